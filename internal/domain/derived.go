package domain

// Métricas derivadas calculadas na leitura, nunca persistidas.
// Denominador zero retorna nil.

// CTR é a taxa de cliques em percentual
func CTR(m Measures) *float64 {
	return percent(float64(m.Clicks), float64(m.Impressions))
}

// ViewRate é a taxa de visualização de vídeo em percentual
func ViewRate(m Measures) *float64 {
	return percent(float64(m.VideoViews), float64(m.Impressions))
}

// AverageCPV é o custo médio por visualização
func AverageCPV(m Measures) *float64 {
	return ratio(m.Cost, float64(m.VideoViews))
}

// AverageCPM é o custo médio por mil impressões
func AverageCPM(m Measures) *float64 {
	value := ratio(m.Cost, float64(m.Impressions))
	if value == nil {
		return nil
	}
	cpm := *value * 1000
	return &cpm
}

// CompletionRate é o percentual de impressões que atingiu o quartil (25, 50, 75 ou 100)
func CompletionRate(m Measures, quartile int) *float64 {
	var views float64
	switch quartile {
	case 25:
		views = m.VideoViews25Quartile
	case 50:
		views = m.VideoViews50Quartile
	case 75:
		views = m.VideoViews75Quartile
	case 100:
		views = m.VideoViews100Quartile
	default:
		return nil
	}
	return percent(views, float64(m.Impressions))
}

// DerivedStats agrupa as métricas derivadas para respostas da API
type DerivedStats struct {
	CTR            *float64 `json:"ctr"`
	ViewRate       *float64 `json:"video_view_rate"`
	AverageCPV     *float64 `json:"average_cpv"`
	AverageCPM     *float64 `json:"average_cpm"`
	CompletionRate *float64 `json:"video100rate"`
}

func Derive(m Measures) DerivedStats {
	return DerivedStats{
		CTR:            CTR(m),
		ViewRate:       ViewRate(m),
		AverageCPV:     AverageCPV(m),
		AverageCPM:     AverageCPM(m),
		CompletionRate: CompletionRate(m, 100),
	}
}

func ratio(numerator, denominator float64) *float64 {
	if denominator == 0 {
		return nil
	}
	value := numerator / denominator
	return &value
}

func percent(numerator, denominator float64) *float64 {
	value := ratio(numerator, denominator)
	if value == nil {
		return nil
	}
	pct := *value * 100
	return &pct
}
