package seed

import "feiyi/internal/models"

// knowledgeSeed references its item by name, since ids are assigned on insert.
type knowledgeSeed struct {
	entry    models.KnowledgeEntry
	itemName string
}

func categoryRef(id int64) *int64 { return &id }

var sampleItems = []models.Item{
	{
		Name:                    "昆曲",
		CategoryID:              4,
		Description:             `昆曲是中国最古老的剧种之一，被誉为"百戏之祖"`,
		OriginLocation:          "江苏昆山",
		HistoricalBackground:    "昆曲起源于14世纪中国的昆山，至今已有600多年历史。明代魏良辅对昆山腔进行改革，奠定了昆曲的基础。",
		Characteristics:         `昆曲以工尺谱记谱，曲调优美，表演细腻，被称为"水磨调"。其表演融合了唱、念、做、打等多种艺术形式。`,
		InheritanceStatus:       "活跃传承",
		ProtectionLevel:         "世界非物质文化遗产",
		RepresentativeInheritor: "汪世瑜、蔡正仁、梁谷音等",
		Images:                  []string{"kunqu1.jpg", "kunqu2.jpg"},
		Videos:                  []string{"kunqu_performance.mp4"},
	},
	{
		Name:                    "京剧",
		CategoryID:              4,
		Description:             "京剧是中国五大戏曲剧种之一，被誉为中国国粹",
		OriginLocation:          "北京",
		HistoricalBackground:    "京剧形成于19世纪中期，由徽剧、汉剧、昆曲、秦腔等剧种融合发展而成。",
		Characteristics:         "京剧以西皮、二黄为主要声腔，表演程式化，脸谱艺术独特，有生、旦、净、丑四大行当。",
		InheritanceStatus:       "活跃传承",
		ProtectionLevel:         "世界非物质文化遗产",
		RepresentativeInheritor: "梅兰芳、程砚秋、尚小云、荀慧生等",
		Images:                  []string{"jingju1.jpg", "jingju2.jpg"},
		Videos:                  []string{"jingju_performance.mp4"},
	},
	{
		Name:                    "中医针灸",
		CategoryID:              9,
		Description:             "中医针灸是中国传统医学的重要组成部分",
		OriginLocation:          "中国",
		HistoricalBackground:    "针灸疗法起源于新石器时代，距今已有数千年历史。《黄帝内经》奠定了针灸理论基础。",
		Characteristics:         "通过针刺和艾灸刺激人体穴位，调节气血，治疗疾病。具有简便易行、疗效显著的特点。",
		InheritanceStatus:       "活跃传承",
		ProtectionLevel:         "世界非物质文化遗产",
		RepresentativeInheritor: "石学敏、王雪苔、贺普仁等",
		Images:                  []string{"zhenjiu1.jpg", "zhenjiu2.jpg"},
		Videos:                  []string{"zhenjiu_technique.mp4"},
	},
	{
		Name:                    "蜀锦织造技艺",
		CategoryID:              8,
		Description:             `蜀锦是中国四大名锦之一，有"寸锦寸金"之誉`,
		OriginLocation:          "四川成都",
		HistoricalBackground:    "蜀锦起源于春秋战国时期，至今已有2000多年历史。汉代时蜀锦已远销海外。",
		Characteristics:         "蜀锦色彩绚丽，图案精美，质地坚韧。传统工艺复杂，需要高超的技艺。",
		InheritanceStatus:       "濒危",
		ProtectionLevel:         "国家级非物质文化遗产",
		RepresentativeInheritor: "钟秉章、贺斌等",
		Images:                  []string{"shujin1.jpg", "shujin2.jpg"},
		Videos:                  []string{"shujin_weaving.mp4"},
	},
	{
		Name:                    "太极拳",
		CategoryID:              6,
		Description:             "太极拳是中国传统武术的代表，融合了哲学、医学、美学",
		OriginLocation:          "河南温县陈家沟",
		HistoricalBackground:    "太极拳起源于明末清初，由陈王廷创编。后发展出陈、杨、武、吴、孙五大流派。",
		Characteristics:         "动作缓慢柔和，刚柔相济，以意导气，以气运身，具有健身养生和技击功能。",
		InheritanceStatus:       "活跃传承",
		ProtectionLevel:         "世界非物质文化遗产",
		RepresentativeInheritor: "陈小旺、杨振铎、吴阿敏等",
		Images:                  []string{"taijiquan1.jpg", "taijiquan2.jpg"},
		Videos:                  []string{"taijiquan_demo.mp4"},
	},
	{
		Name:                    "二十四节气",
		CategoryID:              10,
		Description:             "二十四节气是中国古代农业文明的智慧结晶",
		OriginLocation:          "中国",
		HistoricalBackground:    "二十四节气形成于春秋战国时期，完善于汉代，是中国古代用来指导农事的补充历法。",
		Characteristics:         "根据太阳在黄道上的位置变化，将一年分为24个节气，反映了季节、气候、物候的变化规律。",
		InheritanceStatus:       "活跃传承",
		ProtectionLevel:         "世界非物质文化遗产",
		RepresentativeInheritor: "刘晓峰、萧放等民俗学者",
		Images:                  []string{"24jieqi1.jpg", "24jieqi2.jpg"},
		Videos:                  []string{"24jieqi_intro.mp4"},
	},
}

var sampleKnowledge = []knowledgeSeed{
	{
		entry: models.KnowledgeEntry{
			Title:    "什么是非物质文化遗产",
			Content:  "非物质文化遗产是指各种以非物质形态存在的与群众生活密切相关、世代相承的传统文化表现形式，包括口头传统、传统表演艺术、民俗活动和节庆、有关自然界和宇宙的民间传统知识和实践、传统手工艺技能等以及与上述传统文化表现形式相关的文化空间。",
			Keywords: "非遗,定义,文化遗产,传统文化",
			Source:   "联合国教科文组织",
		},
	},
	{
		entry: models.KnowledgeEntry{
			Title:    "中国非遗保护的重要意义",
			Content:  "保护非物质文化遗产对于维护文化多样性、促进可持续发展、增强民族认同感具有重要意义。它是人类文明的重要组成部分，承载着深厚的历史文化内涵，是连接过去、现在和未来的文化纽带。",
			Keywords: "非遗保护,文化多样性,民族认同,可持续发展",
			Source:   "中国非物质文化遗产保护中心",
		},
	},
	{
		entry: models.KnowledgeEntry{
			Title:      "昆曲的艺术特色",
			Content:    `昆曲被称为"百戏之祖"，其艺术特色主要体现在：1.音乐优美，被誉为"水磨调"；2.表演细腻，程式严谨；3.文学性强，多为文人创作；4.服饰华美，舞台效果精致。昆曲对后来的京剧、越剧等剧种都产生了深远影响。`,
			CategoryID: categoryRef(4),
			Keywords:   "昆曲,艺术特色,水磨调,百戏之祖",
			Source:     "中国戏曲学院",
		},
		itemName: "昆曲",
	},
}
