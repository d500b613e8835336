package playback

import "fmt"

type renderKind int

const (
	kindUnrendered renderKind = iota
	kindTerritory
	kindProduction
)

// RenderKey identifies what a host last drew. It is comparable with ==.
// Production keys carry no turn since the production map never changes.
type RenderKey struct {
	kind    renderKind
	turn    int
	toggles Toggles
}

func Unrendered() RenderKey { return RenderKey{kind: kindUnrendered} }

func territoryKey(turn int, t Toggles) RenderKey {
	return RenderKey{kind: kindTerritory, turn: turn, toggles: t}
}

func productionKey(t Toggles) RenderKey {
	return RenderKey{kind: kindProduction, toggles: t}
}

func (k RenderKey) IsProduction() bool { return k.kind == kindProduction }

func (k RenderKey) String() string {
	switch k.kind {
	case kindTerritory:
		return fmt.Sprintf("territory(%d)", k.turn)
	case kindProduction:
		return "production"
	}
	return "unrendered"
}
