package pattern

import "strings"

// invertTable is the conditional-inversion table, kept verbatim from the
// reference implementation including its self-inconsistency: "jnae" maps
// to "jae" even though "jnae<->jb" would be equally defensible. Tests pin
// this literal mapping rather than "fixing" it.
var invertTable = map[string]string{
	"je": "jne", "jne": "je",
	"jz": "jnz", "jnz": "jz",
	"jc": "jnc", "jnc": "jc",
	"jb": "jnb", "jnb": "jb",
	"jnae": "jae", "jae": "jnae",
	"jbe": "ja", "ja": "jbe",
	"jna": "ja",
	"jnbe": "jbe",
	"jl": "jge", "jge": "jl",
	"jnge": "jge",
	"jnl": "jl",
	"jle": "jg", "jg": "jle",
	"jng": "jg",
	"jnle": "jle",
	"jo": "jno", "jno": "jo",
	"js": "jns", "jns": "js",
	"jp": "jnp", "jnp": "jp",
	"jpe": "jpo", "jpo": "jpe",
}

func invertJump(mnemonic string) (string, bool) {
	inv, ok := invertTable[strings.ToLower(mnemonic)]
	return inv, ok
}
