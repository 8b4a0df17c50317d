package service

import (
	"fmt"
	"strings"
)

// fallbackRule answers a fixed topic when any of its keywords occurs in the question.
type fallbackRule struct {
	topic    string
	keywords []string // lower case
	answer   string
}

// fallbackRules are evaluated in order; the first match wins.
var fallbackRules = []fallbackRule{
	{
		topic:    "kunqu",
		keywords: []string{"昆曲", "kunqu"},
		answer: `昆曲是中国最古老的戏曲剧种之一，被誉为"百戏之祖"。它起源于明代，以其精美的唱腔、优雅的表演和深厚的文学底蕴而闻名。昆曲的表演特点包括：
1. 唱腔优美，注重字正腔圆
2. 表演细腻，身段优雅
3. 文学性强，多取材于古典名著
4. 音乐伴奏以笛子为主
昆曲于2001年被联合国教科文组织列为"人类口述和非物质遗产代表作"。`,
	},
	{
		topic:    "peking_opera",
		keywords: []string{"京剧", "peking opera", "国粹"},
		answer: `京剧是中国的国粹艺术，形成于19世纪中期，具有以下特点：
1. 行当分明：生、旦、净、丑四大行当
2. 唱念做打：综合性表演艺术
3. 脸谱艺术：不同颜色代表不同性格
4. 服装华美：传统戏曲服饰精美
5. 音乐伴奏：以京胡为主要乐器
京剧融合了音乐、舞蹈、文学、美术等多种艺术形式，是中华文化的重要载体。`,
	},
	{
		topic:    "acupuncture",
		keywords: []string{"针灸", "acupuncture", "中医"},
		answer: `中医针灸是中国传统医学的重要组成部分，有着数千年的历史：
1. 历史悠久：起源可追溯到石器时代
2. 理论基础：基于经络学说和阴阳五行理论
3. 治疗方法：通过针刺和艾灸调节人体气血
4. 适应症广：可治疗多种疾病
5. 安全有效：副作用小，疗效显著
针灸于2010年被联合国教科文组织列入人类非物质文化遗产代表作名录。`,
	},
	{
		topic:    "taichi",
		keywords: []string{"太极", "taichi", "太极拳"},
		answer: `太极拳是中国传统武术的代表，具有深厚的文化价值：
1. 哲学内涵：体现了中国古代的阴阳哲学
2. 健身功效：强身健体，延年益寿
3. 文化传承：承载着中华武术文化
4. 国际影响：在世界各地广泛传播
5. 精神修养：注重内外兼修，身心并重
太极拳不仅是一种武术，更是一种生活哲学和文化符号。`,
	},
	{
		topic:    "shu_brocade",
		keywords: []string{"蜀锦", "shu brocade"},
		answer: `蜀锦是中国四大名锦之一，产于四川成都，有着悠久的历史：
1. 历史传承：始于春秋战国时期
2. 工艺精湛：采用传统手工织造技术
3. 图案精美：多以花鸟、山水为题材
4. 色彩丰富：使用天然染料，色泽持久
5. 文化价值：体现了古代丝绸文化的精髓
蜀锦制作技艺于2006年被列入国家级非物质文化遗产名录。`,
	},
	{
		topic:    "solar_terms",
		keywords: []string{"二十四节气", "节气", "solar terms"},
		answer: `二十四节气是中国古代农业文明的智慧结晶：
1. 科学价值：准确反映季节变化和气候规律
2. 农业指导：指导农事活动的重要依据
3. 文化内涵：承载着丰富的民俗文化
4. 生活智慧：影响着人们的日常生活
5. 国际认可：2016年被列入联合国教科文组织人类非物质文化遗产代表作名录
二十四节气体现了中华民族对自然规律的深刻认识。`,
	},
	{
		topic:    "intangible_heritage",
		keywords: []string{"非遗", "非物质文化遗产", "intangible heritage"},
		answer: `非物质文化遗产是指各种以非物质形态存在的与群众生活密切相关、世代相承的传统文化表现形式。包括：
1. 民间文学：神话、传说、民间故事等
2. 传统音乐：民歌、器乐等
3. 传统舞蹈：民族舞蹈、宗教舞蹈等
4. 传统戏剧：各种地方戏曲
5. 曲艺：相声、评书等
6. 传统体育游艺与杂技
7. 传统美术：绘画、雕塑等
8. 传统技艺：手工艺制作技艺
9. 传统医药：中医药等
10. 民俗：节庆、礼仪等
保护非遗对于传承中华文化具有重要意义。`,
	},
}

const genericAnswerTemplate = `感谢您对非物质文化遗产的关注！您的问题"%s"很有意思。

我是"非遗之光"网站的AI助手，专门为您介绍中国丰富的非物质文化遗产。虽然目前AI服务配置尚未完善，但我可以为您提供以下帮助：

🎭 **戏曲艺术**：昆曲、京剧等传统戏曲
🎵 **音乐舞蹈**：各地民歌、民族舞蹈
🎨 **传统技艺**：蜀锦、景泰蓝等手工艺
⚕️ **传统医药**：中医针灸、中药炮制
🥋 **体育杂技**：太极拳、武术等
📅 **民俗文化**：二十四节气、传统节日

您可以浏览网站的分类页面了解更多详细信息，或者询问具体的非遗项目。让我们一起探索中华文化的瑰宝！`

// FallbackAnswer is the local reply used when the remote service cannot answer.
type FallbackAnswer struct {
	Text  string
	Topic string // empty for the generic reply
}

// Matched reports whether a keyword rule produced the answer.
func (a FallbackAnswer) Matched() bool {
	return a.Topic != ""
}

// LocalFallback picks the first matching canned answer, or the generic template.
func LocalFallback(question string) FallbackAnswer {
	lower := strings.ToLower(question)
	for _, rule := range fallbackRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return FallbackAnswer{Text: rule.answer, Topic: rule.topic}
			}
		}
	}
	return FallbackAnswer{Text: fmt.Sprintf(genericAnswerTemplate, question)}
}
