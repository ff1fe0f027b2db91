package converter

import (
	"github.com/Moraarn/sistercheck/internal/delivery/dto"
	"github.com/Moraarn/sistercheck/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to its public response
// shape, flattening the auth block and dropping the password hash.
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}
	return &dto.PatientResponse{
		ID:          patient.ID.Hex(),
		Email:       patient.Auth.Email,
		Phone:       patient.Auth.Phone,
		Status:      patient.Auth.Status,
		MedicalData: patient.MedicalData,
		CreatedAt:   patient.CreatedAt,
		UpdatedAt:   patient.UpdatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities.
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
