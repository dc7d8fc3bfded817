package core

import (
	"fmt"
	"io"
	"strings"

	"github.com/encodeous/rayon/state"
)

// Report formatting is a pure read of agent state at round boundaries; the
// engine's state transitions never write output themselves.

// WriteDistanceTable renders one node's distance table at step t.
// Destinations label the columns, each cost cell is left-padded to
// DistanceCellWidth, Infinite renders as INF.
func WriteDistanceTable(w io.Writer, id state.NodeId, table state.DistanceTable, t int) {
	dests := table.Destinations()
	names := make([]string, len(dests))
	for i, d := range dests {
		names[i] = string(d)
	}
	fmt.Fprintf(w, "Distance Table of router %s at t=%d:\n", id, t)
	fmt.Fprintf(w, "     %s\n", strings.Join(names, "    "))
	for _, dest := range dests {
		cells := make([]string, 0, len(dests))
		for _, via := range table.Vias(dest) {
			cells = append(cells, fmt.Sprintf("%-*s", state.DistanceCellWidth, table[dest][via]))
		}
		fmt.Fprintf(w, "%s    %s\n", dest, strings.Join(cells, "    "))
	}
}

// WriteRoutingTable renders one node's routing table, one dest,nexthop,cost
// line per destination in sorted order. Unreachable destinations render as
// dest,INF,INF.
func WriteRoutingTable(w io.Writer, id state.NodeId, routes state.RoutingTable) {
	fmt.Fprintf(w, "\nRouting Table of router %s:\n", id)
	for _, dest := range routes.Destinations() {
		entry := routes[dest]
		if entry.Cost == state.Infinite {
			fmt.Fprintf(w, "%s,INF,INF\n", dest)
		} else {
			fmt.Fprintf(w, "%s,%s,%d\n", dest, entry.NextHop, entry.Cost)
		}
	}
}
