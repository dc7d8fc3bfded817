package core

import (
	"strings"
	"testing"

	"github.com/encodeous/rayon/state"
	"github.com/stretchr/testify/assert"
)

func TestWriteDistanceTable_Exact(t *testing.T) {
	table := state.NewDistanceTable("X", []state.NodeId{"X", "Y", "Z"})
	table["Y"]["Y"] = 2

	var sb strings.Builder
	WriteDistanceTable(&sb, "X", table, 0)
	expected := "Distance Table of router X at t=0:\n" +
		"     Y    Z\n" +
		"Y    2       INF \n" +
		"Z    INF     INF \n"
	assert.Equal(t, expected, sb.String())
}

func TestWriteDistanceTable_WideCosts(t *testing.T) {
	table := state.NewDistanceTable("A", []state.NodeId{"A", "B", "C"})
	table["B"]["B"] = 12
	table["B"]["C"] = 3
	table["C"]["B"] = 1234
	table["C"]["C"] = 7

	var sb strings.Builder
	WriteDistanceTable(&sb, "A", table, 3)
	expected := "Distance Table of router A at t=3:\n" +
		"     B    C\n" +
		"B    12      3   \n" +
		"C    1234    7   \n"
	assert.Equal(t, expected, sb.String())
}

func TestWriteRoutingTable_Exact(t *testing.T) {
	routes := state.RoutingTable{
		"Y": {Cost: 2, NextHop: "Y"},
		"Z": {Cost: state.Infinite, NextHop: state.NoNextHop},
	}
	var sb strings.Builder
	WriteRoutingTable(&sb, "X", routes)
	expected := "\nRouting Table of router X:\n" +
		"Y,Y,2\n" +
		"Z,INF,INF\n"
	assert.Equal(t, expected, sb.String())
}
