package quiz

// defaultTemplateAge is used for ages without their own templates.
const defaultTemplateAge = 7

var nounTemplates = map[int][]string{
	4: {
		"나는 ___을(를) 좋아해요.",
		"엄마가 ___을(를) 주셨어요.",
		"우리 집에 ___이(가) 있어요.",
		"동생이 ___을(를) 가지고 놀아요.",
	},
	5: {
		"오늘 ___을(를) 보았어요.",
		"___이(가) 정말 예뻐요.",
		"공원에서 ___을(를) 발견했어요.",
		"나는 ___을(를) 배우고 싶어요.",
	},
	6: {
		"선생님이 ___에 대해 가르쳐 주셨어요.",
		"___은(는) 매우 중요해요.",
		"우리는 ___을(를) 함께 만들었어요.",
		"책에서 ___에 대해 읽었어요.",
	},
	7: {
		"나는 ___에 대해 궁금해요.",
		"___을(를) 통해 많은 것을 알았어요.",
		"___이(가) 매우 신기해요.",
		"___의 특징은 무엇일까요?",
	},
	8: {
		"___은(는) 우리 생활에 필요해요.",
		"___을(를) 연구하는 것은 흥미로워요.",
		"___의 원리를 이해하게 되었어요.",
		"___에는 여러 종류가 있어요.",
	},
	9: {
		"___은(는) 우리 생활에서 중요한 역할을 해요.",
		"___에 관한 흥미로운 사실을 발견했어요.",
		"___의 영향력은 매우 커요.",
		"미래에는 ___이(가) 더 중요해질 거예요.",
	},
	10: {
		"___의 원리를 설명할 수 있나요?",
		"___에 대한 다양한 관점이 존재해요.",
		"___을(를) 분석하면 많은 것을 알 수 있어요.",
		"___은(는) 복잡하지만 매력적이에요.",
	},
}

var predicateTemplates = map[int][]string{
	4:  {"토끼가 ___.", "나는 매일 ___.", "동생이 ___."},
	5:  {"친구와 함께 ___.", "오늘 아침에 ___.", "공원에서 ___."},
	6:  {"우리는 함께 ___.", "선생님께서 ___ 하셨어요.", "나는 열심히 ___."},
	7:  {"그 순간 무언가가 ___.", "모두가 함께 ___.", "시간이 지나면서 ___."},
	8:  {"사람들은 종종 ___.", "자연스럽게 ___.", "점점 더 ___."},
	9:  {"우리는 언제나 ___.", "상황에 따라 ___.", "결국 모든 것이 ___."},
	10: {"복잡한 과정을 거쳐 ___.", "다양한 요인으로 인해 ___.", "결과적으로 ___."},
}

// templatesFor returns the blank templates for a part of speech and age.
func templatesFor(pos string, age int, nounPOS string) []string {
	set := predicateTemplates
	if pos == nounPOS {
		set = nounTemplates
	}
	if t, ok := set[age]; ok {
		return t
	}
	return set[defaultTemplateAge]
}
