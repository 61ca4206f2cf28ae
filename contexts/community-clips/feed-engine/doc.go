// Package feedengine ranks and pages the public clip feed and applies the
// engagement mutations behind it (likes, views, comments), together with the
// submission and moderation flow that feeds approved clips into it.
//
// Domain and application code only see ports; adapters for Postgres, Redis
// and in-memory storage are composed in module.go and internal/app/bootstrap.
package feedengine
