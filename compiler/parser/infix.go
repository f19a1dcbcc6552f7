package parser

var infixPrioMap = map[Operator]int{
	OP_ADD: 10,
	OP_SUB: 10,

	OP_MUL: 20,
}

func infixPrio(input Operator) int {
	if prio, ok := infixPrioMap[input]; ok {
		return prio
	}

	panic("unknown infixPrio: " + string(input))
}
