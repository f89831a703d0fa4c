//go:build !windows

package locale

func platformQueries() []Query {
	return envQueries()
}
