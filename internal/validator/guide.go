package validator

import (
	"github.com/google/uuid"

	"glosaguard/internal/domain"
	"glosaguard/internal/validator/tiss"
)

// guideSetters are the fields a reviewer may correct by hand, keyed by
// finding field path.
var guideSetters = map[string]func(*tiss.Guide, string){
	tiss.FieldPatientName:            func(g *tiss.Guide, v string) { g.Patient.Name = v },
	tiss.FieldPatientCPF:             func(g *tiss.Guide, v string) { g.Patient.CPF = v },
	tiss.FieldPatientCardNumber:      func(g *tiss.Guide, v string) { g.Patient.CardNumber = v },
	tiss.FieldProcedureTUSSCode:      func(g *tiss.Guide, v string) { g.Procedure.TUSSCode = v },
	tiss.FieldProcedureCID:           func(g *tiss.Guide, v string) { g.Procedure.CID = v },
	tiss.FieldProcedureValue:         func(g *tiss.Guide, v string) { g.Procedure.Value = tiss.ParseAmount(v) },
	tiss.FieldProcedureDate:          func(g *tiss.Guide, v string) { g.Procedure.Date = v },
	tiss.FieldPhysicianName:          func(g *tiss.Guide, v string) { g.Physician.Name = v },
	tiss.FieldPhysicianLicenseNumber: func(g *tiss.Guide, v string) { g.Physician.LicenseNumber = v },
	tiss.FieldPayerCode:              func(g *tiss.Guide, v string) { g.Payer.Code = v },
	tiss.FieldPayerName:              func(g *tiss.Guide, v string) { g.Payer.Name = v },
}

// EditableFields lists the field paths accepted by EditGuide.
func EditableFields() []string {
	return []string{
		tiss.FieldPatientName, tiss.FieldPatientCPF, tiss.FieldPatientCardNumber,
		tiss.FieldProcedureTUSSCode, tiss.FieldProcedureCID, tiss.FieldProcedureValue, tiss.FieldProcedureDate,
		tiss.FieldPhysicianName, tiss.FieldPhysicianLicenseNumber,
		tiss.FieldPayerCode, tiss.FieldPayerName,
	}
}

func guideRecord(submissionID uuid.UUID, g *tiss.Guide) *domain.GuideRecord {
	return &domain.GuideRecord{
		SubmissionID:           submissionID,
		PatientName:            g.Patient.Name,
		PatientCPF:             g.Patient.CPF,
		PatientCardNumber:      g.Patient.CardNumber,
		ProcedureTUSSCode:      g.Procedure.TUSSCode,
		ProcedureCID:           g.Procedure.CID,
		ProcedureValue:         g.Procedure.Value,
		ProcedureDate:          g.Procedure.Date,
		PhysicianName:          g.Physician.Name,
		PhysicianLicenseNumber: g.Physician.LicenseNumber,
		PayerCode:              g.Payer.Code,
		PayerName:              g.Payer.Name,
	}
}

func guideFromRecord(r *domain.GuideRecord) *tiss.Guide {
	return &tiss.Guide{
		Patient: tiss.Patient{
			Name:       r.PatientName,
			CPF:        r.PatientCPF,
			CardNumber: r.PatientCardNumber,
		},
		Procedure: tiss.Procedure{
			TUSSCode: r.ProcedureTUSSCode,
			CID:      r.ProcedureCID,
			Value:    r.ProcedureValue,
			Date:     r.ProcedureDate,
		},
		Physician: tiss.Physician{
			Name:          r.PhysicianName,
			LicenseNumber: r.PhysicianLicenseNumber,
		},
		Payer: tiss.Payer{
			Code: r.PayerCode,
			Name: r.PayerName,
		},
	}
}

func toDomainFindings(submissionID uuid.UUID, fs []tiss.Finding) []domain.ValidationFinding {
	out := make([]domain.ValidationFinding, len(fs))
	for i, f := range fs {
		out[i] = domain.ValidationFinding{
			SubmissionID: submissionID,
			Position:     i,
			Category:     f.Category,
			Rule:         f.Rule,
			Field:        f.Field,
			Status:       f.Status,
			Message:      f.Message,
			Details:      f.Details,
			Critical:     f.Critical,
		}
	}
	return out
}
