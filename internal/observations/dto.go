package observations

import (
	"time"

	"tramites-backend/internal/filetypes"
)

type observationResponse struct {
	ID        int64     `json:"id"`
	Stage     int       `json:"stage"`
	UserID    int64     `json:"userId"`
	RoleID    int64     `json:"roleId"`
	Approved  bool      `json:"approved"`
	Remark    string    `json:"remark,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type statusResponse struct {
	HasCorrections             bool                  `json:"hasCorrections"`
	PendingCount               int                   `json:"pendingCount"`
	AlreadySubmittedCorrection bool                  `json:"alreadySubmittedCorrection"`
	Observations               []observationResponse `json:"observations"`
}

type groupedResponse struct {
	Stages  []int                         `json:"stages"`
	ByStage map[int][]observationResponse `json:"byStage"`
	Total   int                           `json:"total"`
}

func toObservationResponses(obs []Observation) []observationResponse {
	out := make([]observationResponse, 0, len(obs))
	for _, o := range obs {
		out = append(out, observationResponse{
			ID:        o.ID,
			Stage:     o.Stage,
			UserID:    o.UserID,
			RoleID:    o.RoleID,
			Approved:  o.Approved,
			Remark:    o.Remark,
			CreatedAt: o.CreatedAt,
		})
	}
	return out
}

func toStatusResponse(status Status) statusResponse {
	return statusResponse{
		HasCorrections:             status.HasCorrections,
		PendingCount:               status.PendingCount,
		AlreadySubmittedCorrection: status.AlreadySubmittedCorrection,
		Observations:               toObservationResponses(status.Observations),
	}
}

type catalogueEntryResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MaxSizeMB   int    `json:"maxSizeMb"`
	Obligatory  bool   `json:"obligatory"`
}

func toCatalogueResponse(entries []filetypes.CatalogueEntry) []catalogueEntryResponse {
	out := make([]catalogueEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, catalogueEntryResponse{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			MaxSizeMB:   e.MaxSizeMB,
			Obligatory:  e.Obligatory,
		})
	}
	return out
}

func toGroupedResponse(grouped GroupedObservations) groupedResponse {
	byStage := make(map[int][]observationResponse, len(grouped.ByStage))
	for stage, obs := range grouped.ByStage {
		byStage[stage] = toObservationResponses(obs)
	}
	return groupedResponse{
		Stages:  grouped.Stages,
		ByStage: byStage,
		Total:   grouped.Total,
	}
}
