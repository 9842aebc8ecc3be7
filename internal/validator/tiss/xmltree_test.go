package tiss_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glosaguard/internal/validator/tiss"
)

func TestDecode_TextAndNesting(t *testing.T) {
	top, err := tiss.Decode([]byte(`<ans><paciente><nome>  Maria  </nome></paciente></ans>`))
	require.NoError(t, err)

	assert.Equal(t, []string{"ans"}, top.Keys())
	nome := top.Lookup("ans", "paciente", "nome")
	require.NotNil(t, nome)
	assert.Equal(t, tiss.KindText, nome.Kind)
	assert.Equal(t, "Maria", nome.Value())
}

func TestDecode_RepeatedSiblingsCollapseToList(t *testing.T) {
	top, err := tiss.Decode([]byte(`<guias>
		<procedimento><codigo>40101010</codigo></procedimento>
		<procedimento><codigo>40202020</codigo></procedimento>
		<procedimento><codigo>40303030</codigo></procedimento>
	</guias>`))
	require.NoError(t, err)

	procs := top.Lookup("guias", "procedimento")
	require.NotNil(t, procs)
	assert.Equal(t, tiss.KindList, procs.Kind)
	require.Len(t, procs.Items, 3)
	assert.Equal(t, "40303030", procs.Items[2].Get("codigo").Value())

	// lists resolve to their first item when walked
	assert.Equal(t, "40101010", top.Lookup("guias", "procedimento", "codigo").Value())
}

func TestDecode_SingleOccurrenceIsNotAList(t *testing.T) {
	top, err := tiss.Decode([]byte(`<guias><procedimento><codigo>1</codigo></procedimento></guias>`))
	require.NoError(t, err)

	proc := top.Lookup("guias", "procedimento")
	require.NotNil(t, proc)
	assert.Equal(t, tiss.KindMap, proc.Kind)
}

func TestDecode_AttributesAndMixedText(t *testing.T) {
	top, err := tiss.Decode([]byte(`<ans><valorTotal moeda="BRL">150,00</valorTotal></ans>`))
	require.NoError(t, err)

	v := top.Lookup("ans", "valorTotal")
	require.NotNil(t, v)
	assert.Equal(t, tiss.KindMap, v.Kind)
	assert.Equal(t, "BRL", v.Get("@moeda").Value())
	assert.Equal(t, "150,00", v.Value())
}

func TestDecode_NamespacePrefixDropped(t *testing.T) {
	doc := `<ans:mensagemTISS xmlns:ans="http://www.ans.gov.br/padroes/tiss/schemas">
		<ans:cabecalho><ans:versao>4.01.00</ans:versao></ans:cabecalho>
	</ans:mensagemTISS>`
	top, err := tiss.Decode([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"mensagemTISS"}, top.Keys())
	assert.Empty(t, top.Lookup("mensagemTISS").Get("@ans").Value())
	assert.Equal(t, "4.01.00", top.Lookup("mensagemTISS", "cabecalho", "versao").Value())
}

func TestDecode_Latin1(t *testing.T) {
	doc := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><ans><paciente><nome>Jo\xe3o</nome></paciente></ans>")
	top, err := tiss.Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, "João", top.Lookup("ans", "paciente", "nome").Value())
}

func TestDecode_ByteOrderMark(t *testing.T) {
	top, err := tiss.Decode([]byte("\xef\xbb\xbf<ans><x>1</x></ans>"))
	require.NoError(t, err)
	assert.Equal(t, "1", top.Lookup("ans", "x").Value())
}

func TestDecode_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   \n\t"} {
		top, err := tiss.Decode([]byte(in))
		require.NoError(t, err)
		assert.True(t, top.IsEmpty())
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"plain text", "this is not xml"},
		{"unclosed tag", "<ans><paciente></ans>"},
		{"truncated", "<ans><paciente>"},
		{"invalid entity", "<ans>&bogus;</ans>"},
		{"two roots", "<ans></ans><lote></lote>"},
		{"trailing text", "<ans></ans>garbage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, err := tiss.Decode([]byte(tt.in))
			assert.Error(t, err)
			assert.Nil(t, top)
		})
	}
}

func TestNode_NilSafe(t *testing.T) {
	var n *tiss.Node
	assert.Nil(t, n.Get("x"))
	assert.Nil(t, n.Lookup("a", "b"))
	assert.Equal(t, "", n.Value())
	assert.True(t, n.IsEmpty())
	assert.Nil(t, n.Keys())
}
