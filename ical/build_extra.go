package ical

import "github.com/aimcal/aim/ical/syntax"

func buildXComponent(root *syntax.RawComponent) *XComponent {
	c, _ := collect(root.Properties)
	x := &XComponent{Name: root.Name, Span: spanOf(root)}
	x.Properties = c.extras(nil)
	for _, child := range root.Children {
		x.Children = append(x.Children, buildXComponent(child))
	}
	return x
}

func buildUnrecognizedComponent(root *syntax.RawComponent) *UnrecognizedComponent {
	c, _ := collect(root.Properties)
	u := &UnrecognizedComponent{Name: root.Name, Span: spanOf(root)}
	u.Properties = c.extras(nil)
	for _, child := range root.Children {
		u.Children = append(u.Children, buildUnrecognizedComponent(child))
	}
	return u
}
