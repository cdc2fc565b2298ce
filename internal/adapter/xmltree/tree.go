package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Node - элемент XML-документа. Хранит дочерние элементы в порядке
// следования и полное текстовое содержимое поддерева.
type Node struct {
	Name     string
	Children []*Node

	content strings.Builder
}

// Text возвращает текстовое содержимое элемента: конкатенацию всех
// текстовых узлов и CDATA его поддерева без обрезки пробелов.
func (n *Node) Text() string {
	return n.content.String()
}

// Child возвращает первый прямой дочерний элемент с именем name или nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed возвращает все прямые дочерние элементы с именем name
// в порядке документа.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

var (
	errNoRoot = errors.New("document has no root element")
	utf8BOM   = []byte("\xEF\xBB\xBF")
)

// Parse разбирает буфер как XML-документ и возвращает корневой элемент.
// Имена элементов сравниваются по локальной части, префикс пространства
// имен отбрасывается. Начальная метка порядка байтов UTF-8 пропускается.
func Parse(data []byte) (*Node, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode XML: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Name: t.Name.Local}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("failed to decode XML: extra content after root element <%s>", root.Name)
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				stack[len(stack)-1].content.WriteString(node.content.String())
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].content.Write(t)
			} else if len(bytes.TrimSpace(t)) > 0 {
				return nil, fmt.Errorf("failed to decode XML: text outside of root element")
			}
		}
	}
	if root == nil {
		return nil, errNoRoot
	}
	return root, nil
}
