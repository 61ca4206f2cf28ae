package services

import "strings"

var canonicalGameNames = map[string]string{
	"path of exile":          "Path of Exile",
	"path of exile 2":        "Path of Exile 2",
	"diablo iv":              "Diablo 4",
	"diablo 4":               "Diablo 4",
	"diablo iii":             "Diablo 3",
	"diablo 3":               "Diablo 3",
	"diablo ii":              "Diablo 2",
	"diablo ii: resurrected": "Diablo 2",
	"diablo 2":               "Diablo 2",
	"last epoch":             "Last Epoch",
	"world of warcraft":      "World of Warcraft",
	"titan quest 2":          "Titan Quest 2",
}

// NormalizeGameName maps known spellings onto the names used by the game filter.
func NormalizeGameName(raw string) string {
	value := strings.Join(strings.Fields(raw), " ")
	if canonical, ok := canonicalGameNames[strings.ToLower(value)]; ok {
		return canonical
	}
	return value
}
