package utils

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

const BearerScheme = "Bearer"

func BearerHeader(token string) string {
	return fmt.Sprintf("%s %s", BearerScheme, token)
}

// TokenFromBearer strips the scheme from an Authorization header value.
// It returns "" when the header does not carry a bearer token.
func TokenFromBearer(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}

// AccessToken extracts the "access" token from a login or register response.
func AccessToken(body []byte) string {
	return gjson.GetBytes(body, "access").String()
}
