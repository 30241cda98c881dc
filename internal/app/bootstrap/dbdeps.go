// internal/app/bootstrap/dbdeps.go
package bootstrap

import "github.com/dalemusser/dealerhub/internal/app/system/upstream"

// DBDeps holds back-end dependencies for the app. DealerHub keeps no
// database of its own; its only back end is the upstream API.
type DBDeps struct {
	Upstream *upstream.Client
}
