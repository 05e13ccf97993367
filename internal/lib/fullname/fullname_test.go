package fullname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		middle string
		last   string
		want   string
	}{
		{"все части имени", "John", "M", "Doe", "John M Doe"},
		{"без отчества", "John", "", "Doe", "John Doe"},
		{"только имя", "John", "", "", "John"},
		{"пустые части", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.first, tt.middle, tt.last))
		})
	}
}

func TestBuildWithCurrent(t *testing.T) {
	newLast := "Smith"
	got := BuildWithCurrent(nil, nil, &newLast, "John", "M", "Doe")
	assert.Equal(t, "John M Smith", got)

	got = BuildWithCurrent(nil, nil, nil, "John", "", "Doe")
	assert.Equal(t, "John Doe", got)
}
