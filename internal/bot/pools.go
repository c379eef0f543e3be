package bot

type weatherCondition struct {
	Condition string
	Temp      string
	Desc      string
}

var weatherPool = []weatherCondition{
	{"晴天", "25°C", "阳光明媚"},
	{"多云", "22°C", "云朵飘飘"},
	{"小雨", "18°C", "细雨绵绵"},
	{"阴天", "20°C", "阴云密布"},
	{"大风", "15°C", "风起云涌"},
}

var (
	fitnessPool = []string{"摸鱼、划水、发呆", "午休、喝茶、聊天", "保持低调、适度摸鱼", "网上冲浪、刷手机", "装忙、假装思考"}
	tabooPool   = []string{"加班、开会、写报告", "认真工作、主动汇报", "表现积极、承担责任", "提升自己、努力奋斗", "真的很忙、真的在想"}

	almanacTextPool = []string{
		"📅 农历信息获取中...\n✅ 宜：摸鱼、划水、发呆\n❌ 忌：加班、开会、写报告",
		"📅 今日黄历\n✅ 宜：午休、喝茶、聊天\n❌ 忌：认真工作、主动汇报",
		"📅 老黄历提醒\n✅ 宜：保持低调、适度摸鱼\n❌ 忌：表现积极、承担责任",
		"📅 运势播报\n✅ 宜：网上冲浪、刷手机\n❌ 忌：提升自己、努力奋斗",
		"📅 今日宜忌\n✅ 宜：装忙、假装思考\n❌ 忌：真的很忙、真的在想",
	}
)

var (
	horoscopeSummaries = []string{"运势平稳，适合保持低调", "今天心情不错，做事比较顺利", "需要多注意细节，避免出错", "整体运势不错，心情愉悦"}
	luckyColors        = []string{"蓝色", "红色", "绿色", "黄色", "紫色", "橙色"}
	luckyNumbers       = []string{"3", "7", "8", "5", "9", "6"}
	luckyTimes         = []string{"上午9-11点", "下午2-4点", "晚上7-9点", "中午12-1点"}
	nobleSigns         = []string{"天秤座", "双鱼座", "狮子座", "处女座", "金牛座"}
	horoscopeAdvices   = []string{"保持积极心态，机会就在眼前", "多与朋友交流，会有意外收获", "注意休息，劳逸结合很重要", "相信自己的直觉，做出正确选择"}
)

type indexRange struct{ lo, hi int }

var (
	comprehensiveRange = indexRange{60, 90}
	loveRange          = indexRange{50, 95}
	workRange          = indexRange{55, 88}
	moneyRange         = indexRange{45, 85}
	healthRange        = indexRange{60, 92}
)

// Formatted with the Chinese sign name.
var horoscopeTextPool = []string{
	"⭐ %s今日运势\n📝 今日概述：运势平稳，适合保持低调\n💕 爱情运势：桃花运一般，单身的朋友继续等待\n💼 事业运势：工作顺利，但不宜冒进\n💰 财运：财运平平，适合理财\n🎨 幸运颜色：蓝色\n🔢 幸运数字：7",
	"⭐ %s今日运势\n📝 今日概述：今天心情不错，做事比较顺利\n💕 爱情运势：有机会遇到心仪的人\n💼 事业运势：工作效率高，容易获得认可\n💰 财运：有小财进账的可能\n🎨 幸运颜色：红色\n🔢 幸运数字：3",
	"⭐ %s今日运势\n📝 今日概述：需要多注意细节，避免出错\n💕 爱情运势：感情稳定，适合深入交流\n💼 事业运势：工作中可能遇到小挑战\n💰 财运：支出较多，注意控制消费\n🎨 幸运颜色：绿色\n🔢 幸运数字：5",
	"⭐ %s今日运势\n📝 今日概述：整体运势不错，心情愉悦\n💕 爱情运势：适合表达情感，增进感情\n💼 事业运势：有新的机会出现\n💰 财运：投资运佳，可适当尝试\n🎨 幸运颜色：黄色\n🔢 幸运数字：8",
}

var encouragementPool = map[string][]string{
	"周一": {
		"新的一周开始啦！虽然有点困，但是想想周末的美好，今天也要元气满满哦~ 💪",
		"周一蓝调？不存在的！今天是新开始，让我们一起创造美好的回忆吧~ ✨",
		"Monday Blues退散！今天的你一定会遇到很多美好的事情~ 🌟",
	},
	"周二": {
		"周二是一周中最有潜力的一天！昨天的疲惫已经过去，今天充满无限可能~ 🚀",
		"Tuesday能量日！今天的效率一定会让你惊喜的，加油鸭~ 💫",
		"周二小贴士：保持微笑，好运自然来！今天也要开开心心的~ 😊",
	},
	"周三": {
		"恭喜你！一周已经过半啦！坚持就是胜利，你已经很棒了~ 🎉",
		"Wednesday Wisdom：今天是转折点，下半周会越来越轻松的~ 🌈",
		"周三加油站！给自己一个大大的拥抱，你值得所有的美好~ 🤗",
	},
	"周四": {
		"Thursday Power！明天就是快乐星期五啦，今天再努力一点点~ 💪",
		"周四小确幸：距离周末只有一天了！今天的每一分努力都值得~ ⭐",
		"Thursday Motivation：你已经走了这么远，最后一天也要漂亮收官~ 🏆",
	},
	"周五": {
		"TGIF！Thank God It's Friday！周末在向你招手啦~ 🙌",
		"Friday Feeling！今天心情特别好对不对？让我们愉快地结束这一周~ 🎊",
		"周五福利：今天可以稍微摸摸鱼，毕竟马上就周末了嘛~ 🐟",
	},
}

var defaultEncouragement = []string{"今天也要加油哦！每一天都是新的开始~ ✨"}

// lunchPools is matched in order against the weather text.
var lunchPools = []struct {
	keywords []string
	items    []string
}{
	{[]string{"晴", "阳光"}, []string{
		"晴天外卖推荐：轻食沙拉、日式便当，记得点杯冰饮 🍱❄️",
		"阳光明媚适合点烤肉外卖，配个气泡水超爽！ 🍖🥤",
		"好天气点个网红寿司外卖，颜值味道都在线 🍣✨",
	}},
	{[]string{"雨"}, []string{
		"下雨天外卖首选：麻辣烫、小火锅，暖胃又暖心 🍜☔",
		"雨天点个粥店外卖，热腾腾的很治愈 🍲💕",
		"下雨天就要川菜外卖，辣到出汗忘记阴冷 🌶️🔥",
	}},
	{[]string{"阴", "云"}, []string{
		"阴天外卖推荐：中式快餐，红烧肉盖饭yyds 🥘",
		"多云天气点个炒饭外卖，简单满足 🍚😋",
		"阴天来份温和系外卖：蒸蛋羹、小馄饨很舒服 🥟💛",
	}},
	{[]string{"风"}, []string{
		"大风天外卖要选饱腹系：汉堡、炸鸡，管饱管爽 🍔💪",
		"风大点个包子店外卖，热乎乎的最暖胃 🥟🌪️",
		"刮风天来份重口味外卖：麻辣香锅、水煮鱼片 🐟🌶️",
	}},
}

var lunchDefault = []string{
	"今天外卖盲盒：闭眼点个评分高的，惊喜等你 🍱🎲",
	"不知道点啥外卖？看看昨天收藏夹里的店 🤷📱",
	"外卖推荐：跟着热销榜走，踩雷概率小 📈✨",
}

var encouragementStyles = []string{
	"请以一个资深社畜的第一人称视角，为%s写一句带有黑色幽默的自嘲式上班鼓励语",
	"请模仿一个已经麻木但依然坚强的打工人，为%s生成一句苦中作乐的上班感悟",
	"请以一个在职场摸爬滚打多年的老社畜口吻，为%s写一句既丧又燃的工作箴言",
	"请模仿一个对工作又爱又恨的社畜，为%s生成一句充满矛盾情感的上班独白",
	"请以一个习惯了996但依然保持幽默感的打工人身份，为%s写一句自我安慰式的工作感言",
	"请模仿一个在格子间里求生存的社畜，为%s生成一句带有生存智慧的上班心得",
	"请以一个对现状无奈但依然努力的打工人口吻，为%s写一句自嘲中带着坚韧的工作宣言",
}

const encouragementRules = `要求：
1. 必须使用第一人称来叙述
2. 语调要有黑色幽默感，既丧又不失希望
3. 体现社畜的真实心理状态和生存智慧
4. 长度控制在2-3句话，要有画面感
5. 可以适当自嘲，但要有积极的底色
6. 结合%s的特殊感受（如周一的绝望、周五的期待等）
7. 语言要接地气，有共鸣感
8. 适当使用emoji，但不要过多
9. 可以提及咖啡、地铁等社畜日常元素

请直接输出鼓励话语，不要解释。`

var lunchStyles = []string{
	"请以资深外卖达人的丰富经验，根据天气'%s'推荐一款适合的外卖",
	"请模仿外卖评测专家的专业眼光，结合天气'%s'推荐一份性价比超高的外卖",
	"请以外卖老司机的身份，根据天气'%s'推荐一款口碑爆棚的外卖",
	"请模仿美食博主的推荐风格，结合天气'%s'推荐一份网红外卖",
	"请以外卖重度用户的经验，根据天气'%s'推荐一款治愈系外卖",
	"请模仿外卖攻略达人的推荐方式，结合天气'%s'推荐一份超值外卖套餐",
}

const lunchRules = `要求：
1. 语言要接地气，像真正的外卖达人在分享经验
2. 推荐具体的外卖店铺类型或菜品类别
3. 解释为什么这个外卖选择适合当前天气
4. 可以提及配送时间、性价比、口味特点等实用信息
5. 包含一些外卖小贴士或避坑指南
6. 长度控制在2-3句话，要实用有趣
7. 语调要亲切自然，像朋友推荐
8. 适当使用emoji，营造轻松氛围

请直接输出推荐内容，不要解释。`
