package richtext

// Links groups distinct link targets by link type, in first-seen order.
type Links struct {
	Assets  []Sys
	Entries []Sys
}

// EntityLinks walks doc at any depth and collects the targets of nodes whose
// type equals nodeType. An empty nodeType matches every node. Targets are
// deduplicated by id within their link type; malformed targets are skipped.
func EntityLinks(doc *Node, nodeType string) Links {
	var (
		out  Links
		seen = map[string]map[string]bool{
			LinkAsset: {},
			LinkEntry: {},
		}
	)

	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if nodeType == "" || n.NodeType == nodeType {
			if sys, ok := n.Target(); ok {
				if ids, known := seen[sys.LinkType]; known && !ids[sys.ID] {
					ids[sys.ID] = true
					switch sys.LinkType {
					case LinkAsset:
						out.Assets = append(out.Assets, sys)
					case LinkEntry:
						out.Entries = append(out.Entries, sys)
					}
				}
			}
		}
		for _, c := range n.Content {
			walk(c)
		}
	}
	walk(doc)
	return out
}
