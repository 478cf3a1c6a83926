package models

import "github.com/google/uuid"

// BlockType คือชนิดของ block ที่วางได้ใน template layout
type BlockType string

const (
	BlockTitle        BlockType = "title"
	BlockImage        BlockType = "image"
	BlockAudio        BlockType = "audio"
	BlockOptions4     BlockType = "options4"
	BlockOptions5     BlockType = "options5"
	BlockTimer        BlockType = "timer"
	BlockSubmit       BlockType = "submit"
	BlockRadioButtons BlockType = "radio_buttons"
	BlockCheckbox     BlockType = "checkbox"
	BlockWorkingTimer BlockType = "working_timer"
	BlockText         BlockType = "text"
	BlockQuestions    BlockType = "questions"
	BlockComments     BlockType = "comments"
	BlockDiscard      BlockType = "discard"
)

// Minimum block size enforced while resizing in the builder.
const (
	MinBlockWidth  = 60
	MinBlockHeight = 40
)

// Frame is the absolute-positioned pixel rectangle of a block on the canvas.
type Frame struct {
	X int `bson:"x" json:"x"`
	Y int `bson:"y" json:"y"`
	W int `bson:"w" json:"w"`
	H int `bson:"h" json:"h"`
}

// BlockProps เก็บ property ของ block แต่ละชนิด (ใช้เฉพาะ field ที่ตรงกับ type)
type BlockProps struct {
	Text        string   `bson:"text,omitempty" json:"text,omitempty"`               // title
	Src         string   `bson:"src,omitempty" json:"src,omitempty"`                 // image, audio
	Label       string   `bson:"label,omitempty" json:"label,omitempty"`             // submit, discard
	Options     []string `bson:"options,omitempty" json:"options,omitempty"`         // options4/5, radio_buttons, checkbox
	Selected    *int     `bson:"selected,omitempty" json:"selected,omitempty"`       // options4/5, radio_buttons
	SelectedSet []int    `bson:"selectedSet,omitempty" json:"selectedSet,omitempty"` // checkbox
	Duration    int      `bson:"duration,omitempty" json:"duration,omitempty"`       // timer, working_timer (seconds)
	Content     string   `bson:"content,omitempty" json:"content,omitempty"`         // text
	Question    string   `bson:"question,omitempty" json:"question,omitempty"`       // questions
	Placeholder string   `bson:"placeholder,omitempty" json:"placeholder,omitempty"` // comments
	Value       string   `bson:"value,omitempty" json:"value,omitempty"`             // comments, questions
}

// --- Block ---
type Block struct {
	ID    string     `bson:"id" json:"id"`
	Type  BlockType  `bson:"type" json:"type"`
	Frame Frame      `bson:"frame" json:"frame"`
	Props BlockProps `bson:"props" json:"props"`
}

// blockPresets กำหนดขนาดและ props เริ่มต้นของ block แต่ละชนิด
// ตารางนี้ต้องครบทุกชนิดใน BlockType
var blockPresets = map[BlockType]Block{
	BlockTitle:        {Type: BlockTitle, Frame: Frame{W: 320, H: 60}, Props: BlockProps{Text: "Title"}},
	BlockImage:        {Type: BlockImage, Frame: Frame{W: 360, H: 240}},
	BlockAudio:        {Type: BlockAudio, Frame: Frame{W: 320, H: 64}},
	BlockOptions4:     {Type: BlockOptions4, Frame: Frame{W: 320, H: 200}, Props: BlockProps{Options: []string{"Option 1", "Option 2", "Option 3", "Option 4"}}},
	BlockOptions5:     {Type: BlockOptions5, Frame: Frame{W: 320, H: 240}, Props: BlockProps{Options: []string{"Option 1", "Option 2", "Option 3", "Option 4", "Option 5"}}},
	BlockTimer:        {Type: BlockTimer, Frame: Frame{W: 160, H: 60}, Props: BlockProps{Duration: 60}},
	BlockSubmit:       {Type: BlockSubmit, Frame: Frame{W: 140, H: 48}, Props: BlockProps{Label: "Submit"}},
	BlockRadioButtons: {Type: BlockRadioButtons, Frame: Frame{W: 280, H: 160}, Props: BlockProps{Options: []string{"Yes", "No"}}},
	BlockCheckbox:     {Type: BlockCheckbox, Frame: Frame{W: 280, H: 160}, Props: BlockProps{Options: []string{"Choice 1", "Choice 2"}}},
	BlockWorkingTimer: {Type: BlockWorkingTimer, Frame: Frame{W: 160, H: 60}, Props: BlockProps{Duration: 0}},
	BlockText:         {Type: BlockText, Frame: Frame{W: 320, H: 120}, Props: BlockProps{Content: "Text"}},
	BlockQuestions:    {Type: BlockQuestions, Frame: Frame{W: 320, H: 80}, Props: BlockProps{Question: "Question"}},
	BlockComments:     {Type: BlockComments, Frame: Frame{W: 320, H: 100}, Props: BlockProps{Placeholder: "Add a comment..."}},
	BlockDiscard:      {Type: BlockDiscard, Frame: Frame{W: 140, H: 48}, Props: BlockProps{Label: "Discard"}},
}

// bindableProps คือ property ที่ผูก rule ได้ของ block แต่ละชนิด
// ตารางเดียวนี้ใช้ร่วมกันทั้ง Inspector (builder) และ rendering (player)
var bindableProps = map[BlockType][]string{
	BlockTitle:        {"text"},
	BlockImage:        {"src"},
	BlockAudio:        {"src"},
	BlockOptions4:     {"options"},
	BlockOptions5:     {"options"},
	BlockTimer:        {"duration"},
	BlockSubmit:       {"label"},
	BlockRadioButtons: {"options"},
	BlockCheckbox:     {"options"},
	BlockWorkingTimer: {"duration"},
	BlockText:         {"content"},
	BlockQuestions:    {"question"},
	BlockComments:     {"placeholder"},
	BlockDiscard:      {"label"},
}

// interactiveBlocks คือ block ที่เก็บคำตอบของ annotator ตอน perform
var interactiveBlocks = map[BlockType]bool{
	BlockOptions4:     true,
	BlockOptions5:     true,
	BlockRadioButtons: true,
	BlockCheckbox:     true,
	BlockComments:     true,
	BlockQuestions:    true,
}

// KnownBlockType reports whether t belongs to the closed block type set.
func KnownBlockType(t BlockType) bool {
	_, ok := blockPresets[t]
	return ok
}

// NewBlock creates a block from the preset of the given type with a fresh id.
func NewBlock(t BlockType) (*Block, bool) {
	preset, ok := blockPresets[t]
	if !ok {
		return nil, false
	}
	b := preset
	if preset.Props.Options != nil {
		b.Props.Options = append([]string(nil), preset.Props.Options...)
	}
	b.ID = uuid.NewString()
	return &b, true
}

// BindablePropsFor returns the bindable property names of a block type.
func BindablePropsFor(t BlockType) []string {
	return bindableProps[t]
}

// IsBindableProp reports whether prop can carry a binding rule for type t.
func IsBindableProp(t BlockType, prop string) bool {
	for _, p := range bindableProps[t] {
		if p == prop {
			return true
		}
	}
	return false
}

// IsInteractiveBlock reports whether a block type collects an answer.
func IsInteractiveBlock(t BlockType) bool {
	return interactiveBlocks[t]
}

// AllBlockTypes returns the closed type set (order not significant).
func AllBlockTypes() []BlockType {
	types := make([]BlockType, 0, len(blockPresets))
	for t := range blockPresets {
		types = append(types, t)
	}
	return types
}
