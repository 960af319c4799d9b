package tui

import (
	"fmt"
	"time"

	"entq/internal/configutils"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/viper"
)

var (
	NormalColor    = tcell.ColorWhite
	LockedColor    = tcell.ColorOrange
	HeaderColor    = tcell.ColorYellow
	SecondaryColor = tcell.ColorGray
)

func initIconsMap(config *viper.Viper) map[string]string {
	iconsMap := map[string]string{
		"Name":        "NAME",
		"Description": "DESCRIPTION",
		"Version":     "VERSION",
		"Lock":        "🔒",
		"Commit":      "LAST COMMIT",
		"Asc":         "▲",
		"Desc":        "▼",
	}

	if config.GetBool("general.useNerdFontIcons") {
		nerdIconsMaps := map[string]string{
			"Version": "",
			"Lock":    "",
			"Commit":  "",
			"Asc":     "",
			"Desc":    "",
		}

		for k := range nerdIconsMaps {
			iconsMap[k] = nerdIconsMaps[k]
		}
	}

	for k := range iconsMap {
		p := fmt.Sprintf("icons.%s", k)
		if icon := config.GetString(p); icon != "" {
			iconsMap[k] = icon
		}
	}

	return iconsMap
}

func notificationTimeout(config *viper.Viper) time.Duration {
	if !config.IsSet("general.notificationTimeout") {
		return configutils.DefaultNotificationTimeout
	}

	return config.GetDuration("general.notificationTimeout")
}
