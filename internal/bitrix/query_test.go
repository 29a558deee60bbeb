package bitrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeFlat(t *testing.T) {
	vals := Encode(map[string]any{"id": "17", "count": 3})
	assert.Equal(t, "17", vals.Get("id"))
	assert.Equal(t, "3", vals.Get("count"))
}

func TestEncodeNested(t *testing.T) {
	vals := Encode(map[string]any{
		"filter": map[string]any{"PHONE": "+79991234567"},
		"select": []string{"ID", "NAME"},
	})
	assert.Equal(t, "+79991234567", vals.Get("filter[PHONE]"))
	assert.Equal(t, "ID", vals.Get("select[0]"))
	assert.Equal(t, "NAME", vals.Get("select[1]"))
}

func TestEncodeContactFields(t *testing.T) {
	vals := Encode(map[string]any{
		"fields": map[string]any{
			"NAME": "Иван",
			"PHONE": []any{
				map[string]any{"VALUE": "+79991234567", "VALUE_TYPE": "WORK"},
			},
			"OPPORTUNITY": 500000.0,
		},
	})
	assert.Equal(t, "Иван", vals.Get("fields[NAME]"))
	assert.Equal(t, "+79991234567", vals.Get("fields[PHONE][0][VALUE]"))
	assert.Equal(t, "WORK", vals.Get("fields[PHONE][0][VALUE_TYPE]"))
	assert.Equal(t, "500000", vals.Get("fields[OPPORTUNITY]"))
}

func TestEncodeDeterministic(t *testing.T) {
	params := map[string]any{
		"fields": map[string]any{"B": "2", "A": "1", "C": "3"},
	}
	first := Encode(params).Encode()
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Encode(params).Encode())
	}
}
