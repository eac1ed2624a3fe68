package vos

import (
	"errors"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
)

// ErrInvalidName is returned when a variable name is empty or contains '='.
var ErrInvalidName = errors.New("invalid variable name")

// VEnv represents a shell environment.
type VEnv interface {
	EnvironFetcher

	// LookupEnv retrieves the value of the environment variable named by the key.
	// If the variable is present in the environment the value (which may be
	// empty) is returned and the boolean is true. Otherwise the returned value
	// will be empty and the boolean will be false.
	LookupEnv(key string) (string, bool)

	// Getenv retrieves the value of the environment variable named by the key.
	// It returns the value, which will be empty if the variable is not present.
	// To distinguish between an empty value and an unset value, use LookupEnv.
	Getenv(key string) string

	// Setenv sets the value of the environment variable named by the key,
	// replacing any existing value.
	Setenv(key, value string) error

	// SetenvOverwrite sets the variable, an existing value is only replaced
	// if overwrite is true.
	SetenvOverwrite(key, value string, overwrite bool) error

	// Unsetenv unsets a single environment variable. Unsetting a variable that
	// isn't present is not an error.
	Unsetenv(key string) error

	// Clearenv deletes all environment variables.
	Clearenv()

	// Len returns the number of variables.
	Len() int
}

type EnvironFetcher interface {
	// Environ returns a copy of strings representing the environment, in the
	// form "key=value".
	Environ() []string
}

// EnvList adapts a list of "key=value" strings to an EnvironFetcher.
type EnvList []string

// Environ implements EnvironFetcher.Environ.
func (e EnvList) Environ() []string {
	return e
}

// ValidateName checks that key can be used as a variable name.
func ValidateName(key string) error {
	if key == "" || strings.ContainsRune(key, '=') {
		return ErrInvalidName
	}
	return nil
}

func splitEntry(e string) (key, value string) {
	split := strings.SplitN(e, "=", 2)
	key = split[0]
	if len(split) > 1 {
		value = split[1]
	}
	return key, value
}

// CopyEnv copies all the environment variables from src to dst.
func CopyEnv(dst VEnv, src EnvironFetcher) error {
	for _, e := range src.Environ() {
		key, value := splitEntry(e)
		if err := dst.Setenv(key, value); err != nil {
			return err
		}
	}

	return nil
}

// NewOrderedEnv creates a new, empty environment.
func NewOrderedEnv() *OrderedEnv {
	return &OrderedEnv{
		env: orderedmap.NewOrderedMap[string, string](),
	}
}

// NewOrderedEnvFromList creates an environment from "key=value" entries,
// preserving their order. Entries without a value are stored as empty, entries
// with an invalid name are skipped.
func NewOrderedEnvFromList(environ []string) *OrderedEnv {
	out := NewOrderedEnv()

	for _, e := range environ {
		key, value := splitEntry(e)
		// Invalid names can't be set, the parent process shouldn't send them.
		_ = out.Setenv(key, value)
	}

	return out
}

// OrderedEnv is an in-memory VEnv that enumerates variables in the order they
// were first defined. It is only meant to be used from a single goroutine.
type OrderedEnv struct {
	env *orderedmap.OrderedMap[string, string]
}

var _ VEnv = (*OrderedEnv)(nil)

// Unsetenv implements VEnv.Unsetenv.
func (o *OrderedEnv) Unsetenv(key string) error {
	if err := ValidateName(key); err != nil {
		return err
	}
	o.env.Delete(key)
	return nil
}

// Setenv implements VEnv.Setenv.
func (o *OrderedEnv) Setenv(key, value string) error {
	return o.SetenvOverwrite(key, value, true)
}

// SetenvOverwrite implements VEnv.SetenvOverwrite.
func (o *OrderedEnv) SetenvOverwrite(key, value string, overwrite bool) error {
	if err := ValidateName(key); err != nil {
		return err
	}
	if !overwrite && o.env.Has(key) {
		return nil
	}
	o.env.Set(key, value)
	return nil
}

// LookupEnv implements VEnv.LookupEnv.
func (o *OrderedEnv) LookupEnv(key string) (string, bool) {
	return o.env.Get(key)
}

// Getenv implements VEnv.Getenv.
func (o *OrderedEnv) Getenv(key string) string {
	val, _ := o.LookupEnv(key)
	return val
}

// Environ implements VEnv.Environ.
func (o *OrderedEnv) Environ() []string {
	env := make([]string, 0, o.env.Len())
	for k, v := range o.env.AllFromFront() {
		env = append(env, k+"="+v)
	}
	return env
}

// Clearenv implements VEnv.Clearenv.
func (o *OrderedEnv) Clearenv() {
	o.env = orderedmap.NewOrderedMap[string, string]()
}

// Len implements VEnv.Len.
func (o *OrderedEnv) Len() int {
	return o.env.Len()
}
