package response

import "airline-api/internal/data/entity"

type AirportResponse struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

func AirportToResponse(airport *entity.Airport) AirportResponse {
	return AirportResponse{
		Code:    airport.Code,
		Name:    airport.Name,
		City:    airport.City,
		Country: airport.Country,
	}
}
