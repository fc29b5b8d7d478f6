// Package assets provides embedded files for adnow.
package assets

import "embed"

// SellersPath is the path of the default catalog inside FS.
const SellersPath = "data/sellers.json"

//go:embed data/sellers.json
var FS embed.FS
