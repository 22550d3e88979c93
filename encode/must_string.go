package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/flightcache/cache"
)

func MustString(s *cache.Snapshot, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(s, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
