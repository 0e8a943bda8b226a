package html

// ChromeClass is a typed identifier for the CSS hooks emitted around widgets.
type ChromeClass string

const (
	ClassForm          ChromeClass = "listedit-form"
	ClassWidget        ChromeClass = "listedit-widget"
	ClassLabel         ChromeClass = "listedit-label"
	ClassHelp          ChromeClass = "listedit-help"
	ClassRow           ChromeClass = "listedit-row"
	ClassButton        ChromeClass = "btn"
	ClassErrors        ChromeClass = "listedit-errors"
	ClassActions       ChromeClass = "listedit-actions"
	ClassDefaultSubmit ChromeClass = "listedit-default-submit"
)

func defaultChromeClasses() map[string]string {
	return map[string]string{
		"form":          string(ClassForm),
		"widget":        string(ClassWidget),
		"label":         string(ClassLabel),
		"help":          string(ClassHelp),
		"row":           string(ClassRow),
		"button":        string(ClassButton),
		"errors":        string(ClassErrors),
		"actions":       string(ClassActions),
		"defaultSubmit": string(ClassDefaultSubmit),
	}
}
