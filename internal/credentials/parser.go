// Package credentials reads connection properties files of the form used by
// the WebCenter Content Document Transfer Utility:
//
//	url=https://ucm.example.com/cs/idcplg
//	username=bob
//	password=secret
//	policy=oracle/wss_username_token_client_policy
//
// Keys and values are trimmed, keys are matched case-insensitively and the
// last occurrence of a key wins.
package credentials

import (
	"strings"

	"github.com/quantmind-br/ucmpurge/internal/domain"
	"github.com/quantmind-br/ucmpurge/internal/utils"
	"golang.org/x/text/cases"
)

// Recognized keys
const (
	KeyURL      = "url"
	KeyUsername = "username"
	KeyPassword = "password"
	KeyPolicy   = "policy"
)

var fold = cases.Fold()

// Parse extracts the connection values from the properties text.
// Unknown keys and lines without '=' are ignored; missing keys stay empty.
func Parse(text string) domain.ConnectionInfo {
	var info domain.ConnectionInfo

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		value = strings.TrimSpace(value)
		switch fold.String(strings.TrimSpace(key)) {
		case KeyURL:
			info.URL = value
		case KeyUsername:
			info.Username = value
		case KeyPassword:
			info.Password = value
		case KeyPolicy:
			info.Policy = value
		}
	}

	return info
}

// Load checks, reads and parses the properties file at path
func Load(path string) (domain.ConnectionInfo, error) {
	if err := utils.CheckFile(path); err != nil {
		return domain.ConnectionInfo{}, err
	}

	text, err := utils.ReadTextFile(path)
	if err != nil {
		return domain.ConnectionInfo{}, err
	}

	return Parse(text), nil
}
