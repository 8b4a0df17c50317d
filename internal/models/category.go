package models

import "github.com/samber/lo"

// Category is one of the fixed top-level heritage classifications.
// Categories are compiled in; items reference them by id only.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Intro       string `json:"-"`
}

const defaultCategoryIntro = "传统文化的重要组成部分"

var categories = []Category{
	{1, "民间文学", "包括神话、传说、民间故事、民间歌谣、谚语等", "口头传统和表现形式，包括作为非物质文化遗产媒介的语言；传统的故事、传说、史诗、神话等。"},
	{2, "传统音乐", "包括民间音乐、文人音乐、宫廷音乐、宗教音乐等", "传统音乐包括民歌、器乐、戏曲音乐、宗教音乐等多种形式，体现了中华民族深厚的音乐文化底蕴。"},
	{3, "传统舞蹈", "包括民间舞蹈、宫廷舞蹈、宗教舞蹈等", "传统舞蹈是中华民族文化的重要组成部分，包括民间舞蹈、宫廷舞蹈、宗教舞蹈等多种形式。"},
	{4, "传统戏剧", "包括昆曲、京剧、豫剧、越剧等各种地方戏曲", "传统戏剧是中国传统文化的瑰宝，包括京剧、昆曲、豫剧、越剧等多个剧种。"},
	{5, "曲艺", "包括相声、评书、快板、大鼓等说唱艺术", "曲艺是中华民族独有的艺术形式，包括相声、评书、快板、大鼓等多种表演形式。"},
	{6, "传统体育、游艺与杂技", "包括武术、龙舟、风筝、杂技等", "传统体育、游艺与杂技体现了中华民族的智慧和创造力，包括武术、龙舟、风筝等。"},
	{7, "传统美术", "包括绘画、雕塑、建筑装饰、工艺美术等", "传统美术包括绘画、雕塑、工艺美术等，体现了中华民族的审美情趣和艺术成就。"},
	{8, "传统技艺", "包括纺织、冶炼、制茶、烹饪、中医药等传统工艺", "传统技艺是中华民族智慧的结晶，包括手工技艺、制作技艺等传统工艺。"},
	{9, "传统医药", "包括中医诊疗法、中药炮制技艺、针灸等", "传统医药是中华民族几千年来积累的宝贵财富，包括中医诊疗法、中药炮制技艺等。"},
	{10, "民俗", "包括节庆、婚丧嫁娶、祭祀等民间习俗", "民俗是人民群众在长期生产生活中形成的传统习俗，包括节庆、礼仪、信仰等。"},
}

// Categories returns a copy of the static category list in id order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// FindCategory looks up a static category by id.
func FindCategory(id int64) (Category, bool) {
	return lo.Find(categories, func(c Category) bool { return c.ID == id })
}

// CategoryIntro returns the long-form introduction shown on category pages.
func CategoryIntro(id int64) string {
	if c, ok := FindCategory(id); ok {
		return c.Intro
	}
	return defaultCategoryIntro
}
