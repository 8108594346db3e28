package domain

import (
	"fmt"
	"time"
)

type StatisticKind string

const (
	KindCampaign         StatisticKind = "campaign"
	KindAdGroup          StatisticKind = "ad_group"
	KindVideo            StatisticKind = "video"
	KindAd               StatisticKind = "ad"
	KindGender           StatisticKind = "gender"
	KindParent           StatisticKind = "parent"
	KindAgeRange         StatisticKind = "age_range"
	KindPlacement        StatisticKind = "placement"
	KindKeyword          StatisticKind = "keyword"
	KindTopic            StatisticKind = "topic"
	KindInterest         StatisticKind = "interest"
	KindCity             StatisticKind = "city"
	KindCampaignLocation StatisticKind = "campaign_location"

	// KindCampaignHourly é a estatística de campanha por hora, fora da lista principal
	KindCampaignHourly StatisticKind = "campaign_hourly"
)

// EntityLevel identifica a entidade referenciada pela chave estrangeira de uma estatística
type EntityLevel string

const (
	LevelAccount  EntityLevel = "account"
	LevelCampaign EntityLevel = "campaign"
	LevelAdGroup  EntityLevel = "ad_group"
)

// StatisticKey é a chave natural de uma estatística: entidade pai, segmentação e data.
// Nunca podem existir duas linhas com a mesma chave para um mesmo tipo.
type StatisticKey struct {
	ParentID string
	Segment  string
	Date     time.Time
}

// NewStatisticKey normaliza a data para meia-noite UTC
func NewStatisticKey(parentID, segment string, date time.Time) StatisticKey {
	return StatisticKey{
		ParentID: parentID,
		Segment:  segment,
		Date:     DateOf(date),
	}
}

func (k StatisticKey) String() string {
	return fmt.Sprintf("%s|%s|%s", k.ParentID, k.Segment, k.Date.Format(time.DateOnly))
}

// DateOf descarta o horário mantendo o dia do calendário
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Measures são os valores numéricos de uma estatística
type Measures struct {
	Impressions           int64   `json:"impressions"`
	VideoViews            int64   `json:"video_views"`
	Clicks                int64   `json:"clicks"`
	Cost                  float64 `json:"cost"`
	Conversions           float64 `json:"conversions"`
	AllConversions        float64 `json:"all_conversions"`
	ViewThrough           int64   `json:"view_through"`
	VideoViews25Quartile  float64 `json:"video_views_25_quartile"`
	VideoViews50Quartile  float64 `json:"video_views_50_quartile"`
	VideoViews75Quartile  float64 `json:"video_views_75_quartile"`
	VideoViews100Quartile float64 `json:"video_views_100_quartile"`
}

// Add soma outra medida a esta
func (m Measures) Add(other Measures) Measures {
	return Measures{
		Impressions:           m.Impressions + other.Impressions,
		VideoViews:            m.VideoViews + other.VideoViews,
		Clicks:                m.Clicks + other.Clicks,
		Cost:                  m.Cost + other.Cost,
		Conversions:           m.Conversions + other.Conversions,
		AllConversions:        m.AllConversions + other.AllConversions,
		ViewThrough:           m.ViewThrough + other.ViewThrough,
		VideoViews25Quartile:  m.VideoViews25Quartile + other.VideoViews25Quartile,
		VideoViews50Quartile:  m.VideoViews50Quartile + other.VideoViews50Quartile,
		VideoViews75Quartile:  m.VideoViews75Quartile + other.VideoViews75Quartile,
		VideoViews100Quartile: m.VideoViews100Quartile + other.VideoViews100Quartile,
	}
}

type ClickType string

const (
	ClickWebsite             ClickType = "clicks_website"
	ClickCallToActionOverlay ClickType = "clicks_call_to_action_overlay"
	ClickAppStore            ClickType = "clicks_app_store"
	ClickCards               ClickType = "clicks_cards"
	ClickEndCap              ClickType = "clicks_end_cap"
)

// ClickBreakdown decompõe os cliques em subtipos rastreados
type ClickBreakdown struct {
	Website             int64 `json:"clicks_website"`
	CallToActionOverlay int64 `json:"clicks_call_to_action_overlay"`
	AppStore            int64 `json:"clicks_app_store"`
	Cards               int64 `json:"clicks_cards"`
	EndCap              int64 `json:"clicks_end_cap"`
}

// Add acumula cliques no subtipo informado; subtipos desconhecidos são ignorados
func (c *ClickBreakdown) Add(clickType ClickType, clicks int64) {
	switch clickType {
	case ClickWebsite:
		c.Website += clicks
	case ClickCallToActionOverlay:
		c.CallToActionOverlay += clicks
	case ClickAppStore:
		c.AppStore += clicks
	case ClickCards:
		c.Cards += clicks
	case ClickEndCap:
		c.EndCap += clicks
	}
}

func (c ClickBreakdown) Total() int64 {
	return c.Website + c.CallToActionOverlay + c.AppStore + c.Cards + c.EndCap
}

func (c ClickBreakdown) IsZero() bool {
	return c == ClickBreakdown{}
}

// StatisticRecord é uma linha de estatística diária de um tipo
type StatisticRecord struct {
	Kind      StatisticKind  `json:"kind"`
	AccountID string         `json:"account_id"`
	Key       StatisticKey   `json:"key"`
	Measures  Measures       `json:"measures"`
	Clicks    ClickBreakdown `json:"clicks"`
}
