package resolve

// stdlibRoots lists well-known standard-library package roots per
// language. The lists are representative, not exhaustive: they cover the
// packages common enough to appear in ordinary application code, which
// is the population that actually needs EXTERNAL_STDLIB classification
// rather than being lumped in with third-party packages.
var stdlibRoots = map[string]map[string]bool{
	"go": {
		"fmt": true, "strings": true, "strconv": true, "os": true, "io": true,
		"bytes": true, "errors": true, "context": true, "sync": true, "time": true,
		"net": true, "encoding": true, "path": true, "sort": true, "math": true,
		"reflect": true, "regexp": true, "testing": true, "bufio": true, "unicode": true,
		"runtime": true, "log": true, "flag": true, "container": true, "crypto": true,
		"hash": true, "html": true, "image": true, "mime": true, "text": true,
	},
	"python": {
		"os": true, "sys": true, "re": true, "json": true, "typing": true,
		"collections": true, "itertools": true, "functools": true, "pathlib": true,
		"dataclasses": true, "abc": true, "enum": true, "asyncio": true, "logging": true,
		"math": true, "random": true, "datetime": true, "unittest": true, "subprocess": true,
		"threading": true, "multiprocessing": true, "io": true, "copy": true, "inspect": true,
	},
	"javascript": {
		"fs": true, "path": true, "http": true, "https": true, "util": true,
		"events": true, "stream": true, "crypto": true, "os": true, "url": true,
		"child_process": true, "assert": true, "buffer": true, "querystring": true,
	},
	"typescript": {
		"fs": true, "path": true, "http": true, "https": true, "util": true,
		"events": true, "stream": true, "crypto": true, "os": true, "url": true,
		"child_process": true, "assert": true, "buffer": true, "querystring": true,
	},
}

func isStdlibRoot(language, root string) bool {
	roots, ok := stdlibRoots[language]
	if !ok {
		return false
	}
	return roots[root]
}
