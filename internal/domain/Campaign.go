package domain

import "time"

// DenormalizedFlags são agregados recalculados após a sincronização completa
type DenormalizedFlags struct {
	Recalculated  bool       `json:"de_norm_fields_are_recalculated"`
	MinStatDate   *time.Time `json:"min_stat_date"`
	MaxStatDate   *time.Time `json:"max_stat_date"`
	HasKeywords   bool       `json:"has_keywords"`
	HasTopics     bool       `json:"has_topics"`
	HasInterests  bool       `json:"has_interests"`
	HasPlacements bool       `json:"has_placements"`
	HasVideos     bool       `json:"has_videos"`
}

type Campaign struct {
	ID        string            `json:"id"`
	AccountID string            `json:"account_id"`
	Name      string            `json:"name"`
	Type      string            `json:"type"`
	Status    string            `json:"status"`
	StartDate *time.Time        `json:"start_date"`
	EndDate   *time.Time        `json:"end_date"`
	Budget    *float64          `json:"budget"`
	Totals    Measures          `json:"totals"`
	Flags     DenormalizedFlags `json:"flags"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type AdGroup struct {
	ID         string            `json:"id"`
	CampaignID string            `json:"campaign_id"`
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Status     string            `json:"status"`
	Totals     Measures          `json:"totals"`
	Flags      DenormalizedFlags `json:"flags"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// CampaignResponse expõe a campanha com as métricas derivadas calculadas na leitura
type CampaignResponse struct {
	Campaign
	Derived DerivedStats `json:"derived"`
}

func NewCampaignResponse(c Campaign) CampaignResponse {
	return CampaignResponse{
		Campaign: c,
		Derived:  Derive(c.Totals),
	}
}

// SideEntity é uma campanha ou grupo de anúncios observado num relatório
// que precisa existir antes das estatísticas que o referenciam
type SideEntity struct {
	Level     EntityLevel
	ID        string
	ParentID  string
	Name      string
	Type      string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Budget    *float64
}

// ParentLevel é o nível da entidade que precisa existir antes desta
func (e SideEntity) ParentLevel() EntityLevel {
	if e.Level == LevelAdGroup {
		return LevelCampaign
	}
	return LevelAccount
}

// HourlyStatistic é a estatística de campanha por hora do dia
type HourlyStatistic struct {
	CampaignID  string    `json:"campaign_id"`
	Date        time.Time `json:"date"`
	Hour        int       `json:"hour"`
	Impressions int64     `json:"impressions"`
	VideoViews  int64     `json:"video_views"`
	Clicks      int64     `json:"clicks"`
	Cost        float64   `json:"cost"`
	Conversions float64   `json:"conversions"`
}
