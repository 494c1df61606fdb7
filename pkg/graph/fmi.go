package graph

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// fmi parse states
const (
	PARSE_NODE_COUNT = iota
	PARSE_EDGE_COUNT = iota
	PARSE_NODES      = iota
	PARSE_EDGES      = iota
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatGeometry(ls orb.LineString) string {
	if len(ls) == 0 {
		return "-"
	}
	parts := make([]string, len(ls))
	for i, p := range ls {
		parts[i] = formatFloat(p.Lon()) + "," + formatFloat(p.Lat())
	}
	return strings.Join(parts, ";")
}

func parseGeometry(s string) (orb.LineString, error) {
	if s == "-" {
		return nil, nil
	}
	parts := strings.Split(s, ";")
	ls := make(orb.LineString, 0, len(parts))
	for _, part := range parts {
		lon, lat, found := strings.Cut(part, ",")
		if !found {
			return nil, fmt.Errorf("invalid coordinate %q", part)
		}
		x, err := strconv.ParseFloat(lon, 64)
		if err != nil {
			return nil, err
		}
		y, err := strconv.ParseFloat(lat, 64)
		if err != nil {
			return nil, err
		}
		ls = append(ls, geo.MakePoint(y, x))
	}
	return ls, nil
}

// GraphAsString renders g in the fmi text format:
//
//	<node count>
//	<edge count>
//	#Nodes
//	<id> <n|e> <lat> <lon> [<quoted label>]
//	#Edges
//	<from> <to> <weight> <kind> <lon,lat;lon,lat;...>
func GraphAsString(g Graph) string {
	var sb strings.Builder

	// write number of nodes and number of edges
	sb.WriteString(fmt.Sprintf("%v\n", g.NodeCount()))
	sb.WriteString(fmt.Sprintf("%v\n", g.EdgeCount()))

	sb.WriteString("#Nodes\n")
	for i := 0; i < g.NodeCount(); i++ {
		node := g.GetNode(i)
		if node.ID.Kind == ExternalNode {
			sb.WriteString(fmt.Sprintf("%v e %v %v %q\n", i, formatFloat(node.Lat()), formatFloat(node.Lon()), node.ID.Label))
		} else {
			sb.WriteString(fmt.Sprintf("%v n %v %v\n", i, formatFloat(node.Lat()), formatFloat(node.Lon())))
		}
	}

	sb.WriteString("#Edges\n")
	for e := 0; e < g.EdgeCount(); e++ {
		edge := g.GetEdge(e)
		sb.WriteString(fmt.Sprintf("%v %v %v %v %v\n", edge.From, edge.To, formatFloat(edge.Weight), edge.Kind, formatGeometry(edge.Geometry)))
	}
	return sb.String()
}

func WriteFmi(g Graph, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create %s", filename)
	}

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString(g.AsString()); err != nil {
		file.Close()
		return errors.Wrapf(err, "write %s", filename)
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return errors.Wrapf(err, "write %s", filename)
	}
	return file.Close()
}

func NewAdjacencyListFromFmiString(fmi string, options ...Option) (*AdjacencyListGraph, error) {
	scanner := bufio.NewScanner(strings.NewReader(fmi))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	numNodes := 0
	numEdges := 0
	alg := NewAdjacencyListGraph(options...)

	parseState := PARSE_NODE_COUNT
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if len(line) < 1 {
			// skip empty lines
			continue
		} else if line[0] == '#' {
			// skip comments
			continue
		}

		switch parseState {
		case PARSE_NODE_COUNT:
			val, err := strconv.Atoi(line)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: node count", lineNumber)
			}
			numNodes = val
			parseState = PARSE_EDGE_COUNT
		case PARSE_EDGE_COUNT:
			val, err := strconv.Atoi(line)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: edge count", lineNumber)
			}
			numEdges = val
			parseState = PARSE_NODES
			if numNodes == 0 {
				parseState = PARSE_EDGES
			}
		case PARSE_NODES:
			if err := parseNode(alg, line); err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNumber)
			}
			if alg.NodeCount() == numNodes {
				parseState = PARSE_EDGES
			}
		case PARSE_EDGES:
			if err := parseEdge(alg, line); err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNumber)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if alg.NodeCount() != numNodes || alg.EdgeCount() != numEdges {
		return nil, fmt.Errorf("invalid parsing result: %d/%d nodes, %d/%d edges", alg.NodeCount(), numNodes, alg.EdgeCount(), numEdges)
	}
	return alg, nil
}

func parseNode(alg *AdjacencyListGraph, line string) error {
	var id int
	var kind string
	var lat, lon float64
	if _, err := fmt.Sscanf(line, "%d %s %g %g", &id, &kind, &lat, &lon); err != nil {
		return err
	}
	if id != alg.NodeCount() {
		return fmt.Errorf("node %d out of order", id)
	}
	p := geo.MakePoint(lat, lon)
	switch kind {
	case "n":
		if _, created := alg.AddNetworkNode(alg.KeyOf(p)); !created {
			return fmt.Errorf("duplicate node key at %v", p)
		}
	case "e":
		quote := strings.Index(line, `"`)
		if quote < 0 {
			return fmt.Errorf("node %d: missing label", id)
		}
		var label string
		if _, err := fmt.Sscanf(line[quote:], "%q", &label); err != nil {
			return err
		}
		alg.AddExternalNode(label, p)
	default:
		return fmt.Errorf("unknown node kind %q", kind)
	}
	return nil
}

func parseEdge(alg *AdjacencyListGraph, line string) error {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return fmt.Errorf("expected 5 fields, got %d", len(fields))
	}
	from, err := strconv.Atoi(fields[0])
	if err != nil {
		return err
	}
	to, err := strconv.Atoi(fields[1])
	if err != nil {
		return err
	}
	weight, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return err
	}
	kind, ok := ParseEdgeKind(fields[3])
	if !ok {
		return fmt.Errorf("unknown edge kind %q", fields[3])
	}
	geometry, err := parseGeometry(fields[4])
	if err != nil {
		return err
	}
	if from < 0 || to < 0 || from >= alg.NodeCount() || to >= alg.NodeCount() {
		return fmt.Errorf("edge %d -> %d out of range", from, to)
	}
	if !alg.AddEdge(from, to, weight, kind, geometry) {
		return fmt.Errorf("duplicate edge %d -> %d", from, to)
	}
	return nil
}

func NewAdjacencyListFromFmiFile(filename string, options ...Option) (*AdjacencyListGraph, error) {
	fmi, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", filename)
	}
	return NewAdjacencyListFromFmiString(string(fmi), options...)
}
