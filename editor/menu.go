package editor

import "github.com/cozy/blockedit/schema/basic"

// Menus tells which block menus are open. At most one menu is open at a
// time.
type Menus struct {
	// The id of the block whose type menu is open, or "".
	BlockType string
	// The id of the block whose actions menu is open, or "".
	BlockActions string
}

// Menus returns the state of the menus.
func (e *Editor) Menus() Menus {
	return e.menus
}

// ToggleBlockTypeMenu opens or closes the type menu of a block.
func (e *Editor) ToggleBlockTypeMenu(id string) {
	if e.menus.BlockType == id {
		e.menus.BlockType = ""
	} else {
		e.menus.BlockType = id
	}
	e.menus.BlockActions = ""
}

// ToggleBlockActionsMenu opens or closes the actions menu of a block.
func (e *Editor) ToggleBlockActionsMenu(id string) {
	if e.menus.BlockActions == id {
		e.menus.BlockActions = ""
	} else {
		e.menus.BlockActions = id
	}
	e.menus.BlockType = ""
}

// CloseMenus closes the menus, like when the mouse leaves a block.
func (e *Editor) CloseMenus() {
	e.menus = Menus{}
}

// SelectBlockType converts a block with an entry of the type menu.
func (e *Editor) SelectBlockType(id string, choice basic.BlockChoice) {
	e.ChangeBlockType(id, TypeChange{Type: choice.Type, HeadingLevel: choice.HeadingLevel})
}
