package huffcode

import (
	"bytes"
	"io"
)

// Model is a reusable code: the tree built from a training stream together
// with its dictionary, or a dictionary loaded on its own for decoding.
type Model struct {
	opts []Option
	tree *Tree
	dict *Dictionary
}

// NewModel creates an untrained model with the provided options.
func NewModel(opts ...Option) *Model {
	return &Model{opts: opts}
}

// TrainModel trains a model from the bytes of r.
func TrainModel(r io.Reader, opts ...Option) (*Model, error) {
	m := NewModel(opts...)
	if err := m.Train(r); err != nil {
		return nil, err
	}
	return m, nil
}

// ModelFromDictionary wraps a dictionary, typically one read from a file.
// The model has no tree.
func ModelFromDictionary(d *Dictionary) *Model {
	return &Model{dict: d}
}

// Train collects the frequencies of r and builds the tree and dictionary.
func (m *Model) Train(r io.Reader) error {
	table, err := CollectFrequencies(r)
	if err != nil {
		return err
	}
	tree, err := BuildTree(table, m.opts...)
	if err != nil {
		return err
	}
	m.tree = tree
	m.dict = tree.Dictionary()
	return nil
}

// Encode returns the coded form of data.
func (m *Model) Encode(data []byte) (string, error) {
	if m.dict == nil {
		return "", ErrUntrainedModel
	}
	return EncodeBytes(data, m.dict)
}

// Decode returns the bytes encoded by code.
func (m *Model) Decode(code string) ([]byte, error) {
	if m.dict == nil {
		return nil, ErrUntrainedModel
	}
	return DecodeString(code, m.dict)
}

// WriteDictionary writes the model's dictionary text to w.
func (m *Model) WriteDictionary(w io.Writer) error {
	if m.dict == nil {
		return ErrUntrainedModel
	}
	return WriteDictionary(w, m.dict)
}

// Trained reports whether the model is ready for Encode and Decode.
func (m *Model) Trained() bool {
	return m.dict != nil
}

// Tree returns the tree, or nil for untrained and dictionary-only models.
func (m *Model) Tree() *Tree {
	return m.tree
}

// Dictionary returns the dictionary, or nil for an untrained model.
func (m *Model) Dictionary() *Dictionary {
	return m.dict
}

// TrainBytes is a convenience wrapper around TrainModel for in-memory data.
func TrainBytes(data []byte, opts ...Option) (*Model, error) {
	return TrainModel(bytes.NewReader(data), opts...)
}
