package shortcode

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// alphabet без визуально похожих символов (0/O, 1/l/I)
const alphabet = "23456789abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"

// DefaultLength длина короткого кода события
const DefaultLength = 8

// Generator генерирует короткие коды для шаринга событий
type Generator struct {
	length int
}

// NewGenerator создает генератор с длиной кода по умолчанию
func NewGenerator() *Generator {
	return &Generator{length: DefaultLength}
}

// Generate возвращает новый короткий код
func (g *Generator) Generate() (string, error) {
	code, err := gonanoid.Generate(alphabet, g.length)
	if err != nil {
		return "", fmt.Errorf("shortcode: generate: %w", err)
	}
	return code, nil
}
