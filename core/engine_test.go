package core

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/encodeous/rayon/state"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv() *state.Env {
	return &state.Env{
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Cfg: state.DefaultSimCfg(),
	}
}

// The canonical scenario for initial convergence:
//
//	X --- Y --- Z
//	   2     1
var lineScenario = state.Scenario{
	Nodes: []state.NodeId{"X", "Y", "Z"},
	Links: []state.Link{{A: "X", B: "Y", Cost: 2}, {A: "Y", B: "Z", Cost: 1}},
}

func TestEngine_ThreeNodeLineConverges(t *testing.T) {
	eng := NewEngine(testEnv(), lineScenario)
	require.NoError(t, eng.Run(&bytes.Buffer{}))

	x := eng.agentOf("X")
	y := eng.agentOf("Y")
	z := eng.agentOf("Z")
	assert.Equal(t, state.RouteEntry{Cost: 3, NextHop: "Y"}, x.Routes["Z"])
	assert.Equal(t, state.RouteEntry{Cost: 2, NextHop: "Y"}, x.Routes["Y"])
	assert.Equal(t, state.RouteEntry{Cost: 2, NextHop: "X"}, y.Routes["X"])
	assert.Equal(t, state.RouteEntry{Cost: 1, NextHop: "Z"}, y.Routes["Z"])
	assert.Equal(t, state.RouteEntry{Cost: 3, NextHop: "Y"}, z.Routes["X"])
}

func TestEngine_EmptyScenario(t *testing.T) {
	eng := NewEngine(testEnv(), state.Scenario{})
	assert.Error(t, eng.Run(&bytes.Buffer{}))
}

func TestEngine_AgentOrderMatchesDeclaration(t *testing.T) {
	sc := state.Scenario{Nodes: []state.NodeId{"C", "A", "B"}}
	eng := NewEngine(testEnv(), sc)
	ids := make([]state.NodeId, 0)
	for _, a := range eng.Agents() {
		ids = append(ids, a.Id)
	}
	assert.Equal(t, []state.NodeId{"C", "A", "B"}, ids)
}

func TestEngine_UndeclaredLinkIgnored(t *testing.T) {
	sc := state.Scenario{
		Nodes: []state.NodeId{"A", "B"},
		Links: []state.Link{{A: "A", B: "B", Cost: 1}, {A: "A", B: "Q", Cost: 2}},
	}
	eng := NewEngine(testEnv(), sc)
	assert.False(t, eng.Topology().Linked("A", "Q"))
	assert.True(t, eng.Topology().Linked("A", "B"))
}

func TestEngine_UndeclaredUpdateIgnored(t *testing.T) {
	sc := state.Scenario{
		Nodes:   []state.NodeId{"A", "B"},
		Links:   []state.Link{{A: "A", B: "B", Cost: 1}},
		Updates: []state.Link{{A: "A", B: "Q", Cost: 7}},
	}
	eng := NewEngine(testEnv(), sc)
	require.NoError(t, eng.Run(&bytes.Buffer{}))
	assert.False(t, eng.Topology().Linked("A", "Q"))
}

func TestEngine_FixedPointIdempotence(t *testing.T) {
	sc := state.Scenario{
		Nodes: []state.NodeId{"A", "B"},
		Links: []state.Link{{A: "A", B: "B", Cost: 3}},
	}
	eng := NewEngine(testEnv(), sc)
	require.NoError(t, eng.Run(&bytes.Buffer{}))
	for _, a := range eng.Agents() {
		assert.False(t, a.Dirty)
	}

	tables := make(map[state.NodeId]state.DistanceTable)
	routes := make(map[state.NodeId]state.RoutingTable)
	for _, a := range eng.Agents() {
		tables[a.Id] = a.Table.Clone()
		routes[a.Id] = a.Routes
	}

	// one more full round at the fixed point must change nothing
	eng.round++
	eng.exchange()
	for _, a := range eng.Agents() {
		if diff := cmp.Diff(tables[a.Id], a.Table); diff != "" {
			t.Errorf("%s's distance table changed at the fixed point (-want +got):\n%s", a.Id, diff)
		}
		if diff := cmp.Diff(routes[a.Id], a.Routes); diff != "" {
			t.Errorf("%s's routing table changed at the fixed point (-want +got):\n%s", a.Id, diff)
		}
	}
}

func TestEngine_RoutingTableConsistency(t *testing.T) {
	eng := NewEngine(testEnv(), lineScenario)
	require.NoError(t, eng.Run(&bytes.Buffer{}))
	for _, a := range eng.Agents() {
		a.ComputeRoutes()
		for _, dest := range a.Table.Destinations() {
			entry := a.Routes[dest]
			assert.Equal(t, a.Table.RowMin(dest), entry.Cost)
			if entry.Cost != state.Infinite {
				assert.Equal(t, entry.Cost, a.Table[dest][entry.NextHop])
			} else {
				assert.Equal(t, state.NoNextHop, entry.NextHop)
			}
		}
	}
}

// Removing the only link of the X --- Y --- Z line at Y's far side leaves
// every route to X counting upwards instead of converging: the classic
// count-to-infinity pathology, reproduced here round by round.
//
//	X --- Y --- Z        X     Y --- Z
//	   1     1      =>      x     1
func TestEngine_CountToInfinityTransients(t *testing.T) {
	env := testEnv()
	sc := state.Scenario{
		Nodes:   []state.NodeId{"X", "Y", "Z"},
		Links:   []state.Link{{A: "X", B: "Y", Cost: 1}, {A: "Y", B: "Z", Cost: 1}},
		Updates: []state.Link{{A: "X", B: "Y", Cost: state.Infinite}},
	}
	eng := NewEngine(env, sc)

	// replicate Run's phases by hand so every intermediate table is visible
	names := []state.NodeId{"X", "Y", "Z"}
	for _, a := range eng.Agents() {
		a.SetupTable(names)
	}
	for _, a := range eng.Agents() {
		a.InitFromTopology(eng.Topology(), eng.Agents())
	}
	eng.round = 1
	eng.exchange()
	eng.round = 2
	eng.exchange()

	y := eng.agentOf("Y")
	z := eng.agentOf("Z")
	assert.Equal(t, state.Cost(2), z.Table["X"]["Y"], "initial convergence: Z reaches X through Y")

	eng.applyUpdates()
	assert.False(t, eng.Topology().Linked("X", "Y"))
	eng.round = 3
	for _, a := range eng.Agents() {
		a.HandleTopologyChange(eng.Topology())
	}
	eng.exchange()
	// Y and Z keep trading stale estimates for X, each round adding one hop
	assert.Equal(t, state.Cost(2), z.Table["X"]["Y"])
	assert.Equal(t, state.Cost(2), y.Table["X"]["Z"])

	eng.round = 4
	eng.exchange()
	assert.Equal(t, state.Cost(3), z.Table["X"]["Y"])
	assert.Equal(t, state.Cost(3), y.Table["X"]["Z"])

	eng.round = 5
	eng.exchange()
	assert.Equal(t, state.Cost(4), z.Table["X"]["Y"])
	assert.Equal(t, state.Cost(4), y.Table["X"]["Z"])
}

// Disconnecting the only link must leave both sides unreachable with no next
// hop.
func TestEngine_DisconnectLeavesUnreachable(t *testing.T) {
	sc := state.Scenario{
		Nodes:   []state.NodeId{"A", "B"},
		Links:   []state.Link{{A: "A", B: "B", Cost: 3}},
		Updates: []state.Link{{A: "A", B: "B", Cost: state.Infinite}},
	}
	eng := NewEngine(testEnv(), sc)
	require.NoError(t, eng.Run(&bytes.Buffer{}))

	a := eng.agentOf("A")
	b := eng.agentOf("B")
	assert.Equal(t, state.RouteEntry{Cost: state.Infinite, NextHop: state.NoNextHop}, a.Routes["B"])
	assert.Equal(t, state.RouteEntry{Cost: state.Infinite, NextHop: state.NoNextHop}, b.Routes["A"])
}
