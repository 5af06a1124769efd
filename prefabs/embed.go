package prefabs

import "embed"

//go:embed *.yaml
var PrefabsFS embed.FS
