// Package webapp provides the embedded HTML index page.
package webapp

import (
	_ "embed"
)

//go:embed index.html
var Index []byte
