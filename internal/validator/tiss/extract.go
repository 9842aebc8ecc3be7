package tiss

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// containerTags are the top-level wrappers a TISS guide is expected under, in probe order.
var containerTags = []string{"ans", "lote", "guias", "mensagemTISS"}

// fieldSource lists the candidate tag paths for one logical field, tried in order.
type fieldSource struct {
	field string
	paths [][]string
	set   func(*Guide, string)
}

func path(p string) []string { return strings.Split(p, "/") }

var guideSources = []fieldSource{
	{
		field: FieldPatientName,
		paths: [][]string{path("beneficiario/nomeBeneficiario"), path("paciente/nome"), path("dadosBeneficiario/nomeBeneficiario")},
		set:   func(g *Guide, v string) { g.Patient.Name = v },
	},
	{
		field: FieldPatientCPF,
		paths: [][]string{path("beneficiario/cpf"), path("paciente/cpf"), path("dadosBeneficiario/cpf")},
		set:   func(g *Guide, v string) { g.Patient.CPF = v },
	},
	{
		field: FieldPatientCardNumber,
		paths: [][]string{path("beneficiario/numeroCarteira"), path("paciente/carteirinha"), path("dadosBeneficiario/numeroCarteira")},
		set:   func(g *Guide, v string) { g.Patient.CardNumber = v },
	},
	{
		field: FieldProcedureTUSSCode,
		paths: [][]string{path("procedimento/codigo"), path("procedimentos/codigo"), path("procedimento/codigoProcedimento")},
		set:   func(g *Guide, v string) { g.Procedure.TUSSCode = v },
	},
	{
		field: FieldProcedureCID,
		paths: [][]string{path("diagnostico/cid"), path("procedimento/cid")},
		set:   func(g *Guide, v string) { g.Procedure.CID = v },
	},
	{
		field: FieldProcedureValue,
		paths: [][]string{path("procedimento/valor"), path("valorTotal")},
		set:   func(g *Guide, v string) { g.Procedure.Value = ParseAmount(v) },
	},
	{
		field: FieldProcedureDate,
		paths: [][]string{path("procedimento/data"), path("dataAtendimento")},
		set:   func(g *Guide, v string) { g.Procedure.Date = v },
	},
	{
		field: FieldPhysicianName,
		paths: [][]string{path("profissional/nome"), path("medico/nome")},
		set:   func(g *Guide, v string) { g.Physician.Name = v },
	},
	{
		field: FieldPhysicianLicenseNumber,
		paths: [][]string{path("profissional/crm"), path("medico/crm")},
		set:   func(g *Guide, v string) { g.Physician.LicenseNumber = v },
	},
	{
		field: FieldPayerCode,
		paths: [][]string{path("operadora/codigo"), path("operadora/registroANS")},
		set:   func(g *Guide, v string) { g.Payer.Code = v },
	},
	{
		field: FieldPayerName,
		paths: [][]string{path("operadora/nome")},
		set:   func(g *Guide, v string) { g.Payer.Name = v },
	},
}

// container returns the first expected wrapper present at the top of the
// tree, or nil when none matches.
func container(top *Node) *Node {
	for _, tag := range containerTags {
		if n := top.Get(tag); n != nil {
			return n
		}
	}
	return nil
}

// documentRoot returns the node extraction should start from. Without an
// expected wrapper the document's own root element is used.
func documentRoot(top *Node) *Node {
	if n := container(top); n != nil {
		return n
	}
	keys := top.Keys()
	if len(keys) == 0 {
		return nil
	}
	return top.Get(keys[0])
}

// Extract maps a decoded tree onto a Guide. It never fails; fields whose
// candidate tags are all absent or blank keep their zero value.
func Extract(top *Node) *Guide {
	g := &Guide{}
	root := documentRoot(top)
	if root == nil {
		return g
	}
	for _, src := range guideSources {
		if v, ok := firstValue(root, src.paths); ok {
			src.set(g, v)
		}
	}
	return g
}

func firstValue(root *Node, paths [][]string) (string, bool) {
	for _, p := range paths {
		if v := strings.TrimSpace(root.Lookup(p...).Value()); v != "" {
			return v, true
		}
	}
	return "", false
}

// ParseAmount reads a monetary amount in minor units. Integers are taken as
// is; decimals are rounded to the nearest unit. When both '.' and ',' occur
// the last one is the decimal separator and the other groups thousands.
// Amounts beyond the int64 range saturate at math.MaxInt64, or 0 when
// negative. Anything else yields 0.
func ParseAmount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(normalizeDecimal(s), 64)
	switch {
	case errors.Is(err, strconv.ErrRange):
		// f is ±Inf on overflow and 0 on underflow.
	case err != nil, math.IsNaN(f), math.IsInf(f, 0):
		return 0
	}

	f = math.Round(f)
	switch {
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f < math.MinInt64:
		return 0
	}
	return int64(f)
}

// normalizeDecimal rewrites Brazilian and English digit grouping into a
// plain decimal literal.
func normalizeDecimal(s string) string {
	dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma > dot:
		return strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
	case comma >= 0 && dot > comma:
		return strings.ReplaceAll(s, ",", "")
	case comma >= 0 && strings.Count(s, ",") > 1:
		return strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		return strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}
	return s
}
