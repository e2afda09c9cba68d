package config

// DefaultAppID - приложение, профиль которого создаётся автоматически,
// чтобы меню работало сразу после установки.
const DefaultAppID = "com.figma.Desktop"

// DefaultProfile возвращает стартовый профиль Figma.
func DefaultProfile() ApplicationProfile {
	primary := PrimaryModifier()
	return ApplicationProfile{
		ID:   DefaultAppID,
		Name: "Figma",
		Commands: []Command{
			{
				ID:         "copy",
				Label:      "Copy",
				Definition: mustDefinition(NewKeystroke(KeyC, primary)),
				Icon:       SymbolIcon("doc.on.doc"),
			},
			{
				ID:         "paste",
				Label:      "Paste",
				Definition: mustDefinition(NewKeystroke(KeyV, primary)),
				Icon:       SymbolIcon("clipboard"),
			},
			{
				ID:         "pasteReplace",
				Label:      "Paste to Replace",
				Definition: mustDefinition(NewMenuPath("Edit", "Paste to Replace")),
				Icon:       SymbolIcon("arrow.triangle.2.circlepath"),
			},
			{
				ID:         "createComponent",
				Label:      "Create Component",
				Definition: mustDefinition(NewKeystroke(KeyK, ModAlt, primary)),
				Icon:       SymbolIcon("square.stack.3d.up"),
			},
		},
		Slots: map[int]string{
			0: "copy",
			1: "paste",
			2: "pasteReplace",
			3: "createComponent",
		},
	}
}
