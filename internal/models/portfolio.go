package models

const DefaultPortfolioStyle = "modern"

type PortfolioRequest struct {
	APIKey       string `json:"apiKey"`
	Requirements string `json:"requirements"`
	Style        string `json:"style"`
}

type PortfolioData struct {
	HTML        string `json:"html"`
	Style       string `json:"style"`
	GeneratedAt string `json:"generatedAt"`
}
