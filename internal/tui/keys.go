package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	left      key.Binding
	right     key.Binding
	enter     key.Binding
	esc       key.Binding
	tab       key.Binding
	backtab   key.Binding
	quit      key.Binding
	connect   key.Binding
	status    key.Binding
	comment   key.Binding
	newItem   key.Binding
	delete    key.Binding
	partition key.Binding
	copy      key.Binding
	reset     key.Binding
	logout    key.Binding
	info      key.Binding
	dismiss   key.Binding
	toggle    key.Binding
	yes       key.Binding
	no        key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	left:      key.NewBinding(key.WithKeys("left")),
	right:     key.NewBinding(key.WithKeys("right")),
	enter:     key.NewBinding(key.WithKeys("enter")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	tab:       key.NewBinding(key.WithKeys("tab")),
	backtab:   key.NewBinding(key.WithKeys("shift+tab")),
	quit:      key.NewBinding(key.WithKeys("q")),
	connect:   key.NewBinding(key.WithKeys("c")),
	status:    key.NewBinding(key.WithKeys("s")),
	comment:   key.NewBinding(key.WithKeys("m")),
	newItem:   key.NewBinding(key.WithKeys("n")),
	delete:    key.NewBinding(key.WithKeys("d")),
	partition: key.NewBinding(key.WithKeys("p")),
	copy:      key.NewBinding(key.WithKeys("y")),
	reset:     key.NewBinding(key.WithKeys("R")),
	logout:    key.NewBinding(key.WithKeys("l")),
	info:      key.NewBinding(key.WithKeys("v")),
	dismiss:   key.NewBinding(key.WithKeys("x")),
	toggle:    key.NewBinding(key.WithKeys("ctrl+r")),
	yes:       key.NewBinding(key.WithKeys("y")),
	no:        key.NewBinding(key.WithKeys("n")),
}
