package validation

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// UsernamePattern allows letters, digits and the separators . _ -
	UsernamePattern = `^[A-Za-z0-9._\-]+$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Username *regexp.Regexp
}{
	Username: regexp.MustCompile(UsernamePattern),
}

var registerOnce sync.Once

// IsValidUsername reports whether s matches UsernamePattern
func IsValidUsername(s string) bool {
	return CompiledPatterns.Username.MatchString(s)
}

// RegisterBindingRules installs the custom `binding` tags used by the request DTOs
// into gin's validator engine. Safe to call more than once.
func RegisterBindingRules() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		err = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return IsValidUsername(fl.Field().String())
		})
	})
	return err
}
