package syncing

import (
	"strings"
	"time"

	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/pkg/utils"
)

// Campos dos relatórios
const (
	fieldDate      = "segments.date"
	fieldDevice    = "segments.device"
	fieldNetwork   = "segments.ad_network_type"
	fieldHour      = "segments.hour"
	fieldClickType = "segments.click_type"
	fieldCity      = "segments.geo_target_city"

	fieldCampaignID        = "campaign.id"
	fieldCampaignName      = "campaign.name"
	fieldCampaignType      = "campaign.advertising_channel_type"
	fieldCampaignStatus    = "campaign.status"
	fieldCampaignStartDate = "campaign.start_date"
	fieldCampaignEndDate   = "campaign.end_date"
	fieldBudgetMicros      = "campaign_budget.amount_micros"

	fieldAdGroupID     = "ad_group.id"
	fieldAdGroupName   = "ad_group.name"
	fieldAdGroupType   = "ad_group.type"
	fieldAdGroupStatus = "ad_group.status"

	fieldImpressions    = "metrics.impressions"
	fieldVideoViews     = "metrics.video_views"
	fieldClicks         = "metrics.clicks"
	fieldCostMicros     = "metrics.cost_micros"
	fieldConversions    = "metrics.conversions"
	fieldAllConversions = "metrics.all_conversions"
	fieldViewThrough    = "metrics.view_through_conversions"
	fieldQuartile25     = "metrics.video_quartile_p25_rate"
	fieldQuartile50     = "metrics.video_quartile_p50_rate"
	fieldQuartile75     = "metrics.video_quartile_p75_rate"
	fieldQuartile100    = "metrics.video_quartile_p100_rate"
)

var baseMetricFields = []string{
	fieldImpressions,
	fieldVideoViews,
	fieldClicks,
	fieldCostMicros,
	fieldConversions,
	fieldAllConversions,
	fieldViewThrough,
}

var quartileFields = []string{
	fieldQuartile25,
	fieldQuartile50,
	fieldQuartile75,
	fieldQuartile100,
}

// só linhas com entrega
var withImpressions = []domain.Predicate{
	{Field: fieldImpressions, Operator: ">", Values: []string{"0"}},
}

// KindSpec descreve o relatório e a chave natural de um tipo de estatística
type KindSpec struct {
	Kind     domain.StatisticKind
	Resource string
	// ParentField identifica a entidade referenciada pela estatística
	ParentField string
	ParentLevel domain.EntityLevel
	// SegmentFields compõem a segmentação da chave natural, nessa ordem
	SegmentFields []string
	// EntityFields são campos extras da entidade lateral
	EntityFields []string
	Predicates   []domain.Predicate
	Quartiles    bool
	ClickTypes   bool
	ConsumeOnce  bool
	// BoundedByAccount limita a janela às datas das estatísticas de grupo de anúncios da conta
	BoundedByAccount bool
	// SideEntity extrai a entidade que precisa existir antes das estatísticas
	SideEntity func(row domain.Row) (domain.SideEntity, bool)
}

// PrimaryFields são os campos do relatório principal
func (k KindSpec) PrimaryFields() []string {
	fields := []string{k.ParentField}
	fields = append(fields, k.EntityFields...)
	fields = append(fields, k.SegmentFields...)
	fields = append(fields, fieldDate)
	fields = append(fields, baseMetricFields...)
	if k.Quartiles {
		fields = append(fields, quartileFields...)
	}
	return dedupFields(fields)
}

// ClickTypeFields são os campos do relatório secundário de tipos de clique
func (k KindSpec) ClickTypeFields() []string {
	fields := []string{k.ParentField}
	fields = append(fields, k.SegmentFields...)
	fields = append(fields, fieldClickType, fieldDate, fieldClicks)
	return dedupFields(fields)
}

// Key monta a chave natural da linha; false quando falta a entidade ou a data
func (k KindSpec) Key(row domain.Row) (domain.StatisticKey, bool) {
	parentID := row.String(k.ParentField)
	if parentID == "" {
		return domain.StatisticKey{}, false
	}

	date, ok := row.Date(fieldDate)
	if !ok {
		return domain.StatisticKey{}, false
	}

	return domain.NewStatisticKey(parentID, k.Segment(row), date), true
}

// Segment junta os valores de segmentação com "|"
func (k KindSpec) Segment(row domain.Row) string {
	values := make([]string, len(k.SegmentFields))
	for i, field := range k.SegmentFields {
		values[i] = row.String(field)
	}
	return strings.Join(values, "|")
}

func dedupFields(fields []string) []string {
	seen := make(map[string]struct{}, len(fields))
	result := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, ok := seen[field]; ok {
			continue
		}
		seen[field] = struct{}{}
		result = append(result, field)
	}
	return result
}

// measuresFromRow converte custo de micros e taxas de quartil em visualizações
func measuresFromRow(row domain.Row, quartiles bool) domain.Measures {
	impressions := row.Int64(fieldImpressions)
	m := domain.Measures{
		Impressions:    impressions,
		VideoViews:     row.Int64(fieldVideoViews),
		Clicks:         row.Int64(fieldClicks),
		Cost:           utils.MicrosToUnits(row.Int64(fieldCostMicros)),
		Conversions:    row.Float64(fieldConversions),
		AllConversions: row.Float64(fieldAllConversions),
		ViewThrough:    row.Int64(fieldViewThrough),
	}

	if quartiles {
		m.VideoViews25Quartile = quartileViews(row, fieldQuartile25, impressions)
		m.VideoViews50Quartile = quartileViews(row, fieldQuartile50, impressions)
		m.VideoViews75Quartile = quartileViews(row, fieldQuartile75, impressions)
		m.VideoViews100Quartile = quartileViews(row, fieldQuartile100, impressions)
	}

	return m
}

func quartileViews(row domain.Row, field string, impressions int64) float64 {
	return row.Float64(field) / 100 * float64(impressions)
}

func campaignEntity(row domain.Row) (domain.SideEntity, bool) {
	id := row.String(fieldCampaignID)
	if id == "" {
		return domain.SideEntity{}, false
	}

	entity := domain.SideEntity{
		Level:     domain.LevelCampaign,
		ID:        id,
		Name:      row.String(fieldCampaignName),
		Type:      row.String(fieldCampaignType),
		Status:    row.String(fieldCampaignStatus),
		StartDate: optionalDate(row, fieldCampaignStartDate),
		EndDate:   optionalDate(row, fieldCampaignEndDate),
	}
	if _, ok := row[fieldBudgetMicros]; ok {
		budget := utils.MicrosToUnits(row.Int64(fieldBudgetMicros))
		entity.Budget = &budget
	}
	return entity, true
}

func adGroupEntity(row domain.Row) (domain.SideEntity, bool) {
	id := row.String(fieldAdGroupID)
	campaignID := row.String(fieldCampaignID)
	if id == "" || campaignID == "" {
		return domain.SideEntity{}, false
	}

	return domain.SideEntity{
		Level:    domain.LevelAdGroup,
		ID:       id,
		ParentID: campaignID,
		Name:     row.String(fieldAdGroupName),
		Type:     row.String(fieldAdGroupType),
		Status:   row.String(fieldAdGroupStatus),
	}, true
}

func optionalDate(row domain.Row, field string) *time.Time {
	date, ok := row.Date(field)
	if !ok {
		return nil
	}
	return &date
}

// adGroupCriterion monta o tipo padrão de estatística por critério de grupo de anúncios
func adGroupCriterion(kind domain.StatisticKind, resource string, segment string, clickTypes bool) KindSpec {
	return KindSpec{
		Kind:             kind,
		Resource:         resource,
		ParentField:      fieldAdGroupID,
		ParentLevel:      domain.LevelAdGroup,
		SegmentFields:    []string{segment},
		Predicates:       withImpressions,
		Quartiles:        true,
		ClickTypes:       clickTypes,
		BoundedByAccount: true,
	}
}

// DefaultKinds é a ordem da sincronização completa: campanhas e grupos de anúncios
// vêm antes de qualquer tipo que os referencie
func DefaultKinds() []KindSpec {
	gender := adGroupCriterion(domain.KindGender, "gender_view", "ad_group_criterion.gender.type", true)
	gender.ConsumeOnce = true
	parent := adGroupCriterion(domain.KindParent, "parental_status_view", "ad_group_criterion.parental_status.type", true)
	parent.ConsumeOnce = true
	ageRange := adGroupCriterion(domain.KindAgeRange, "age_range_view", "ad_group_criterion.age_range.type", true)
	ageRange.ConsumeOnce = true

	return []KindSpec{
		CampaignKind(),
		{
			Kind:          domain.KindAdGroup,
			Resource:      "ad_group",
			ParentField:   fieldAdGroupID,
			ParentLevel:   domain.LevelAdGroup,
			SegmentFields: []string{fieldDevice, fieldNetwork},
			EntityFields:  []string{fieldCampaignID, fieldAdGroupName, fieldAdGroupType, fieldAdGroupStatus},
			Predicates:    withImpressions,
			Quartiles:     true,
			ClickTypes:    true,
			SideEntity:    adGroupEntity,
		},
		adGroupCriterion(domain.KindVideo, "video", "video.id", false),
		adGroupCriterion(domain.KindAd, "ad_group_ad", "ad_group_ad.ad.id", false),
		gender,
		parent,
		ageRange,
		adGroupCriterion(domain.KindPlacement, "managed_placement_view", "ad_group_criterion.placement.url", true),
		adGroupCriterion(domain.KindKeyword, "keyword_view", "ad_group_criterion.keyword.text", false),
		adGroupCriterion(domain.KindTopic, "topic_view", "ad_group_criterion.topic.topic_constant", false),
		adGroupCriterion(domain.KindInterest, "ad_group_audience_view", "ad_group_criterion.criterion_id", false),
		adGroupCriterion(domain.KindCity, "geographic_view", fieldCity, false),
		{
			Kind:             domain.KindCampaignLocation,
			Resource:         "location_view",
			ParentField:      fieldCampaignID,
			ParentLevel:      domain.LevelCampaign,
			SegmentFields:    []string{"campaign_criterion.criterion_id"},
			Predicates:       withImpressions,
			BoundedByAccount: true,
		},
	}
}

// CampaignKind é o tipo usado também pela sincronização horária
func CampaignKind() KindSpec {
	return KindSpec{
		Kind:          domain.KindCampaign,
		Resource:      "campaign",
		ParentField:   fieldCampaignID,
		ParentLevel:   domain.LevelCampaign,
		SegmentFields: []string{fieldDevice},
		EntityFields: []string{
			fieldCampaignName,
			fieldCampaignType,
			fieldCampaignStatus,
			fieldCampaignStartDate,
			fieldCampaignEndDate,
			fieldBudgetMicros,
		},
		Predicates: withImpressions,
		Quartiles:  true,
		ClickTypes: true,
		SideEntity: campaignEntity,
	}
}

// KindByName procura o tipo na lista padrão
func KindByName(kind domain.StatisticKind) (KindSpec, bool) {
	for _, spec := range DefaultKinds() {
		if spec.Kind == kind {
			return spec, true
		}
	}
	return KindSpec{}, false
}
