// internal/app/features/login/grant.go
package login

import (
	"errors"

	"github.com/dalemusser/dealerhub/internal/app/system/auth"
	"github.com/tidwall/gjson"
)

var errNoToken = errors.New("login response carries no token")

// grant is what a successful upstream login hands back.
type grant struct {
	Token string
	User  auth.SessionUser
}

// Accepted locations of the token and user in the login response.
var (
	tokenPaths = []string{"token", "data.token", "accessToken", "data.accessToken"}
	userPaths  = []string{"user", "data.user"}
)

func parseGrant(body []byte) (grant, error) {
	token := firstString(body, tokenPaths...)
	if token == "" {
		return grant{}, errNoToken
	}

	var user gjson.Result
	for _, p := range userPaths {
		if u := gjson.GetBytes(body, p); u.IsObject() {
			user = u
			break
		}
	}

	return grant{
		Token: token,
		User: auth.SessionUser{
			ID:    firstOf(user, "_id", "id"),
			Name:  firstOf(user, "name"),
			Email: firstOf(user, "email"),
			Role:  firstOf(user, "role"),
		},
	}, nil
}

func firstString(body []byte, paths ...string) string {
	for _, p := range paths {
		if v := gjson.GetBytes(body, p); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}

func firstOf(obj gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := obj.Get(k); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}
