package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrMalformedGraph = errors.New("malformed graph")

var transportNames = map[string]Transport{
	"taxi":        TaxiRoute,
	"bus":         BusRoute,
	"underground": UndergroundRoute,
	"boat":        Ferry,
	"ferry":       Ferry,
}

// ReadGraph parses the classic board text format: a "nodes edges" header,
// one node id per line, then one "a b Mode" line per edge. Blank lines and
// lines starting with '#' are ignored.
func ReadGraph(r io.Reader) (*Graph, error) {
	g := NewGraph()
	scanner := bufio.NewScanner(r)

	line := 0
	nodes, edges := -1, -1
	readNodes, readEdges := 0, 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)

		switch {
		case nodes < 0:
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: expected header: %w", line, ErrMalformedGraph)
			}
			var err error
			if nodes, err = strconv.Atoi(fields[0]); err != nil {
				return nil, fmt.Errorf("line %d: node count: %w", line, ErrMalformedGraph)
			}
			if edges, err = strconv.Atoi(fields[1]); err != nil {
				return nil, fmt.Errorf("line %d: edge count: %w", line, ErrMalformedGraph)
			}
		case readNodes < nodes:
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("line %d: node id %q: %w", line, fields[0], ErrMalformedGraph)
			}
			g.AddNode(id)
			readNodes++
		default:
			if len(fields) != 3 {
				return nil, fmt.Errorf("line %d: expected edge: %w", line, ErrMalformedGraph)
			}
			a, errA := strconv.Atoi(fields[0])
			b, errB := strconv.Atoi(fields[1])
			if errA != nil || errB != nil {
				return nil, fmt.Errorf("line %d: edge endpoints: %w", line, ErrMalformedGraph)
			}
			mode, ok := transportNames[strings.ToLower(fields[2])]
			if !ok {
				return nil, fmt.Errorf("line %d: transport %q: %w", line, fields[2], ErrMalformedGraph)
			}
			if !g.Has(a) || !g.Has(b) {
				return nil, fmt.Errorf("line %d: edge %d-%d references unknown node: %w", line, a, b, ErrMalformedGraph)
			}
			g.AddEdge(a, b, mode)
			readEdges++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read graph: %w", err)
	}
	if nodes < 0 {
		return nil, fmt.Errorf("empty input: %w", ErrMalformedGraph)
	}
	if readNodes != nodes || readEdges != edges {
		return nil, fmt.Errorf("read %d nodes and %d edges, header declares %d and %d: %w",
			readNodes, readEdges, nodes, edges, ErrMalformedGraph)
	}
	return g, nil
}
