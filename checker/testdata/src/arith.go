package fixtures

func literalZero() int {
	z := 0
	return 1 / z
}

func guardedNonZero(y int) int {
	if y != 0 {
		return 1 / y
	}
	return 0
}

func unguarded(y int) int {
	return 1 / y
}

func zeroGuard(y int) int {
	if y == 0 {
		return 1 / y
	}
	return 0
}

func safeAddition(x, y int) int {
	if x > 0 && y >= 0 {
		return 1 / (x + y)
	}
	return 0
}

func safeSubtraction(x, y int) int {
	if x > 0 && y <= 0 {
		return 1 / (x - y)
	}
	return 0
}

func multiplicationPreservesSigns(x, y int) int {
	if x < 0 && y < 0 {
		return 1 / (x * y)
	}
	return 0
}

func branchDivision(c bool, d int) int {
	if c {
		d = -3
	} else {
		d = 3
	}
	return 1 / d
}

func truncating() int {
	three := 3
	q := three / 5
	return 1 / q
}

func divisionAssignment(y int) int {
	a := 10
	a /= y
	b := 10
	b /= 2
	return a + b
}

func loopAccumulate(n int) int {
	d := 1
	for i := 0; i < n; i++ {
		d += i
	}
	return 100 / d
}

func safeModulo(x int) int {
	if x != 0 {
		return 100 % (x * x)
	}
	return 0
}

func cautiousCheck(x int) int {
	if !(x > 0) {
		return 0
	}
	return 1 / x
}
