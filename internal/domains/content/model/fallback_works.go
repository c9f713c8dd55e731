package model

import "portfolio-backend/internal/locale"

// DefaultFallbackWorks returns the static portfolio dataset served when the
// CMS has no work documents for a locale. The live CMS is the source of
// truth; this keeps the works page from ever rendering empty.
func DefaultFallbackWorks() map[locale.Code][]WorkItem {
	return map[locale.Code][]WorkItem{
		locale.EnUS: fallbackWorksEn(),
		locale.JaJP: fallbackWorksJa(),
	}
}

func fallbackWorksEn() []WorkItem {
	return []WorkItem{
		{
			ID:          "eire-systems",
			UID:         "eire-systems",
			Title:       "EIRE Systems Corporate Website Relaunch",
			Description: "Corporate website redesign for an IT support company including data analysis, requirements, SEO strategy, UX/UI design, content writing and site build",
			Link:        "https://www.eiresystems.com/ja/",
			CTAText:     "Visit Site",
			Category:    "strategic_marketing",
			Order:       1,
			Locale:      locale.EnUS,
		},
		{
			ID:          "axiory-jp",
			UID:         "axiory-jp",
			Title:       "AXIORY Forex Broker Japan",
			Description: "Website content management and localization",
			Link:        "https://www.axiory.com/jp/",
			CTAText:     "See the Sample",
			Category:    "strategic_marketing",
			Order:       2,
			Locale:      locale.EnUS,
		},
		{
			ID:          "boucheron-ec",
			UID:         "boucheron-ec",
			Title:       "Boucheron Japan E-commerce",
			Description: "E-commerce management and content strategy",
			Link:        "https://www.boucheron.com/ja_jp/",
			CTAText:     "See the Sample",
			Category:    "strategic_marketing",
			Order:       3,
			Locale:      locale.EnUS,
		},
		{
			ID:          "boucheron-social",
			UID:         "boucheron-social",
			Title:       "Boucheron Japan Social Media",
			Description: "Management of LINE (200K followers), Facebook (246K followers), and X (9K followers) accounts",
			Link:        "https://page.line.me/625rfwps",
			CTAText:     "See the Sample",
			Category:    "social_media",
			Order:       9,
			Locale:      locale.EnUS,
		},
		{
			ID:          "paul-smith-social",
			UID:         "paul-smith-social",
			Title:       "Paul Smith Japan Social Media",
			Description: "Management of Instagram (120K followers), Facebook (68K followers), and X (52K followers) accounts",
			Link:        "https://www.instagram.com/paulsmithjapan/",
			CTAText:     "See the Sample",
			Category:    "social_media",
			Order:       10,
			Locale:      locale.EnUS,
		},
	}
}

func fallbackWorksJa() []WorkItem {
	return []WorkItem{
		{
			ID:          "eire-systems",
			UID:         "eire-systems",
			Title:       "EIREシステムズ コーポレートサイト リニューアル",
			Description: "ITサポート企業のコーポレートサイト リデザイン。データ分析、要件定義、SEO戦略、UX/UIデザイン、コンテンツ制作、サイト構築まで担当",
			Link:        "https://www.eiresystems.com/ja/",
			CTAText:     "サイトを見る",
			Category:    "strategic_marketing",
			Order:       1,
			Locale:      locale.JaJP,
		},
		{
			ID:          "axiory-jp",
			UID:         "axiory-jp",
			Title:       "AXIORY 海外FXブローカー 日本市場",
			Description: "ウェブサイトのコンテンツ管理とローカライゼーション",
			Link:        "https://www.axiory.com/jp/",
			CTAText:     "詳細を見る",
			Category:    "strategic_marketing",
			Order:       2,
			Locale:      locale.JaJP,
		},
		{
			ID:          "boucheron-ec",
			UID:         "boucheron-ec",
			Title:       "ブシュロン ジャパン Eコマース",
			Description: "Eコマース運用とコンテンツ戦略",
			Link:        "https://www.boucheron.com/ja_jp/",
			CTAText:     "詳細を見る",
			Category:    "strategic_marketing",
			Order:       3,
			Locale:      locale.JaJP,
		},
		{
			ID:          "boucheron-social",
			UID:         "boucheron-social",
			Title:       "ブシュロン ジャパン ソーシャルメディア",
			Description: "LINE（20万フォロワー）、Facebook（24.6万フォロワー）、X（9千フォロワー）アカウントの運用",
			Link:        "https://page.line.me/625rfwps",
			CTAText:     "詳細を見る",
			Category:    "social_media",
			Order:       9,
			Locale:      locale.JaJP,
		},
		{
			ID:          "paul-smith-social",
			UID:         "paul-smith-social",
			Title:       "ポール・スミス ジャパン ソーシャルメディア",
			Description: "Instagram（12万フォロワー）、Facebook（6.8万フォロワー）、X（5.2万フォロワー）アカウントの運用",
			Link:        "https://www.instagram.com/paulsmithjapan/",
			CTAText:     "詳細を見る",
			Category:    "social_media",
			Order:       10,
			Locale:      locale.JaJP,
		},
	}
}
