package syntax

// Children returns the direct children of the given node, in source order.
// Attribute lists come before the other children of a declaration.
func Children(n Node) []Node {
	var out []Node
	switch n := n.(type) {
	case *Tree:
		for _, f := range n.Files {
			out = append(out, f)
		}
	case *File:
		for _, d := range n.Decls {
			out = append(out, d)
		}
	case *Namespace:
		for _, d := range n.Decls {
			out = append(out, d)
		}
	case *Class:
		out = appendAttributeLists(out, n.Attributes)
		for _, d := range n.Decls {
			out = append(out, d)
		}
	case *Enum:
		out = appendAttributeLists(out, n.Attributes)
		for _, m := range n.Members {
			out = append(out, m)
		}
	case *EnumMember:
		out = appendAttributeLists(out, n.Attributes)
		if n.Value != nil {
			out = append(out, n.Value)
		}
	case *Field:
		out = appendAttributeLists(out, n.Attributes)
		for _, v := range n.Vars {
			out = append(out, v)
		}
	case *Variable:
		if n.Init != nil {
			out = append(out, n.Init)
		}
	case *Property:
		out = appendAttributeLists(out, n.Attributes)
	case *AttributeList:
		for _, a := range n.Attributes {
			out = append(out, a)
		}
	case *Attribute:
		if n.Args != nil {
			out = append(out, n.Args)
		}
	case *ArgumentList:
		for _, a := range n.Args {
			out = append(out, a)
		}
	case *Argument:
		if n.Expr != nil {
			out = append(out, n.Expr)
		}
	}
	return out
}

func appendAttributeLists(out []Node, lists []*AttributeList) []Node {
	for _, l := range lists {
		out = append(out, l)
	}
	return out
}

// Inspect traverses the tree rooted at n in pre-order. It calls f for each
// node along with the stack of its ancestors (outermost first, n excluded).
// If f returns false, the node's children are not visited. The stack slice
// is only valid for the duration of the call.
func Inspect(n Node, f func(n Node, ancestors []Node) bool) {
	var stack []Node
	var visit func(n Node)
	visit = func(n Node) {
		if !f(n, stack) {
			return
		}
		stack = append(stack, n)
		for _, c := range Children(n) {
			visit(c)
		}
		stack = stack[:len(stack)-1]
	}
	visit(n)
}

// EnclosingNamespace returns the dotted name of all namespaces in the given
// ancestor stack, outermost first. It returns an empty string for the global
// namespace.
func EnclosingNamespace(ancestors []Node) string {
	var name string
	for _, a := range ancestors {
		if ns, ok := a.(*Namespace); ok {
			if name == "" {
				name = NormalizeName(ns.Name)
			} else {
				name += "." + NormalizeName(ns.Name)
			}
		}
	}
	return name
}
