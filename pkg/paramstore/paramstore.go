// Package paramstore implements actionlib.ParamSource backed by Viper,
// giving an ActionServer access to values from configuration files,
// environment variables, and flags through the same collaborator seam
// a parameter-server client would use.
package paramstore

import (
	"strings"

	"github.com/spf13/viper"
)

// Store is a ParamSource backed by a *viper.Viper instance.
type Store struct {
	v *viper.Viper
}

// New wraps an existing *viper.Viper as a Store. Passing nil creates a
// Store backed by a fresh, empty Viper instance.
func New(v *viper.Viper) *Store {
	if v == nil {
		v = viper.New()
	}
	return &Store{v: v}
}

// Get returns the raw value stored at name, or false if unset.
func (s *Store) Get(name string) (any, bool) {
	key := toViperKey(name)
	if !s.v.IsSet(key) {
		return nil, false
	}
	return s.v.Get(key), true
}

// Search walks name's namespace segments from most to least specific,
// looking for the first segment that resolves to a set value — mirroring
// a parameter-server's upward search for a shared parameter such as
// actionlib_status_frequency.
func (s *Store) Search(name string) (string, bool) {
	segments := strings.Split(strings.Trim(name, "/"), "/")
	for i := len(segments); i > 0; i-- {
		candidate := "/" + strings.Join(segments[:i], "/")
		if s.v.IsSet(toViperKey(candidate)) {
			return candidate, true
		}
	}
	if s.v.IsSet(toViperKey(name)) {
		return name, true
	}
	return "", false
}

// toViperKey maps an actionlib parameter name ("/ns/status_list_timeout")
// to a Viper key ("ns.status_list_timeout"), since Viper's nested-key
// delimiter is "." rather than "/".
func toViperKey(name string) string {
	trimmed := strings.Trim(name, "/")
	return strings.ReplaceAll(trimmed, "/", ".")
}
