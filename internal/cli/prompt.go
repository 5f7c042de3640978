package cli

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// errNoPassword возвращается, если пароль не задан и stdin не терминал
var errNoPassword = errors.New("wordpress password is not set: use wordpress.password, MASTOPRESS_WORDPRESS_PASSWORD or run in a terminal")

// readPassword запрашивает пароль без эха; подменяется в тестах
var readPassword = func(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errNoPassword
	}

	fmt.Fprint(os.Stderr, prompt)
	pwBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(pwBytes) == 0 {
		return "", errNoPassword
	}
	return string(pwBytes), nil
}
