package state

import (
	"bufio"
	"io"
	"slices"
	"strings"
)

// Link declares or updates one undirected link. An Infinite cost encodes
// "no link / remove" (textual form: -1).
type Link struct {
	A    NodeId `yaml:"a"`
	B    NodeId `yaml:"b"`
	Cost Cost   `yaml:"cost"`
}

// Scenario is a parsed simulation input: the declared nodes in declaration
// order, the initial links, and at most one batch of topology-change events.
type Scenario struct {
	Nodes   []NodeId `yaml:"nodes"`
	Links   []Link   `yaml:"links"`
	Updates []Link   `yaml:"updates,omitempty"`
}

/*
ParseScenario reads the line-oriented scenario grammar:

	<NodeName>                     declares a node
	<NodeA> <NodeB> <cost|-1>      declares or updates a link
	UPDATE                         starts the topology-change block
	<NodeA> <NodeB> <cost|-1>      one topology-change event
	END                            ends the topology-change block

Blank lines and lines starting with '#' are ignored. Recovery is silent skip:
malformed lines (wrong token count, unparsable cost, reserved words used as
node names) are discarded and parsing continues. Only reader failures are
surfaced as errors.
*/
func ParseScenario(r io.Reader) (Scenario, error) {
	var sc Scenario
	seen := make(map[NodeId]bool)
	readingUpdates := false

	scan := bufio.NewScanner(r)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "UPDATE" {
			readingUpdates = true
			continue
		}
		if line == "END" {
			readingUpdates = false
			continue
		}

		toks := strings.Fields(line)
		switch {
		case !readingUpdates && len(toks) == 1:
			if reserved(toks[0]) {
				continue
			}
			id := NodeId(toks[0])
			if !seen[id] {
				seen[id] = true
				sc.Nodes = append(sc.Nodes, id)
			}
		case len(toks) == 3:
			link, ok := parseLink(toks)
			if !ok {
				continue
			}
			if readingUpdates {
				sc.Updates = append(sc.Updates, link)
			} else {
				sc.Links = append(sc.Links, link)
			}
		}
	}
	if err := scan.Err(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

func parseLink(toks []string) (Link, bool) {
	if reserved(toks[0]) || reserved(toks[1]) {
		return Link{}, false
	}
	cost, err := ParseCost(toks[2])
	if err != nil {
		return Link{}, false
	}
	return Link{A: NodeId(toks[0]), B: NodeId(toks[1]), Cost: cost}, true
}

func reserved(tok string) bool {
	return slices.Contains(ReservedWords, tok)
}
