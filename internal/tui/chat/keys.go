package chat

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Send     key.Binding
	Suggest  key.Binding
	Minimize key.Binding
	Up       key.Binding
	Down     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Send:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "enviar")),
		Suggest:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "sugerencia")),
		Minimize: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "minimizar")),
		Up:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "subir")),
		Down:     key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "bajar")),
		Quit:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "salir")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Suggest, k.Minimize, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Send, k.Suggest}, {k.Up, k.Down}, {k.Minimize, k.Quit}}
}
