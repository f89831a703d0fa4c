//go:build windows

package locale

import "golang.org/x/sys/windows"

func platformQueries() []Query {
	return append([]Query{
		uiLanguageQuery(windows.GetUserPreferredUILanguages),
		uiLanguageQuery(windows.GetSystemPreferredUILanguages),
	}, envQueries()...)
}

func uiLanguageQuery(get func(flags uint32) ([]string, error)) Query {
	return func() string {
		languages, err := get(windows.MUI_LANGUAGE_NAME)
		if err != nil || len(languages) == 0 {
			return ""
		}
		return languages[0]
	}
}
