package address

import (
	"fmt"
	"strings"
)

// Default head and tail lengths used by AbbreviateDefault.
const (
	DefaultHead = 4
	DefaultTail = 4
)

// Ellipsis joins the head and tail of an abbreviated payload.
const Ellipsis = "…"

// Abbreviate shortens the payload part of an address for display.
//
// v may be an EntityAddress, a *EntityAddress, a string already in canonical
// form, or any fmt.Stringer. The string is split on its first '_' into kind
// and payload; a payload no longer than head+tail runes is returned as is,
// otherwise it becomes payload[:head] + "…" + payload[len-tail:]. Strings
// without a '_' are returned unchanged, nil yields "".
func Abbreviate(v any, head, tail int) string {
	s := toCanonical(v)
	kind, payload, ok := strings.Cut(s, "_")
	if !ok {
		return s
	}
	return kind + "_" + shorten(payload, head, tail)
}

// AbbreviateDefault is Abbreviate with DefaultHead and DefaultTail.
func AbbreviateDefault(v any) string {
	return Abbreviate(v, DefaultHead, DefaultTail)
}

func shorten(s string, head, tail int) string {
	if head < 0 {
		head = 0
	}
	if tail < 0 {
		tail = 0
	}
	runes := []rune(s)
	if len(runes) <= head+tail {
		return s
	}
	return string(runes[:head]) + Ellipsis + string(runes[len(runes)-tail:])
}

func toCanonical(v any) string {
	switch a := v.(type) {
	case nil:
		return ""
	case EntityAddress:
		return Render(a)
	case *EntityAddress:
		if a == nil {
			return ""
		}
		return Render(*a)
	case string:
		return a
	case fmt.Stringer:
		return a.String()
	default:
		return fmt.Sprint(v)
	}
}
