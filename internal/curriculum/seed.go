package curriculum

var seedSubjects = []Subject{
	{
		Code:  "P1",
		Title: "Pure Mathematics 1",
		Chapters: []Chapter{
			{
				ID:     "p1_1",
				Title:  "1. Algebraic Expressions",
				Topics: []string{"Index Laws", "Expanding Brackets", "Factorising", "Surds"},
				Guide: &Guide{
					Structure:   []string{"Indices Rules", "Fractional Indices", "Quadratics & Cubics", "Factorising", "Surds & Conjugates"},
					CoreContent: "Algebra foundations. Focus on (a+b)^2 != a^2 + b^2 and rationalising denominators.",
					Tips:        []string{"Remember index laws strictly.", "Conjugate of a+sqrt(b) is a-sqrt(b)."},
				},
				Details: &Details{
					KeyPoints: []string{"Multiply powers: add indices.", "Rationalise using conjugates.", "Difference of two squares is vital."},
					Formulas:  []string{"a^m x a^n = a^(m+n)", "a^(m/n) = (n-th root of a)^m"},
					Concepts:  []Concept{{Term: "Surd", Definition: "Irrational number with a root."}},
				},
			},
			{
				ID:     "p1_2",
				Title:  "2. Quadratics",
				Topics: []string{"Solving Quadratics", "Completing the Square", "The Discriminant", "Modeling"},
				Guide: &Guide{
					Structure:   []string{"Factorisation", "CTS form", "Quadratic Formula", "Discriminant", "Sketching"},
					CoreContent: "Analyse ax^2+bx+c. Completing the square reveals the vertex directly.",
					Tips:        []string{"Discriminant > 0: distinct real roots.", "Discriminant = 0: one repeated root."},
				},
				Details: &Details{
					KeyPoints: []string{"Vertex is (-p, q) in a(x+p)^2+q form.", "Discriminant is b^2-4ac."},
					Formulas:  []string{"x = [-b +/- sqrt(b^2-4ac)] / 2a", "D = b^2 - 4ac"},
					Concepts:  []Concept{{Term: "Discriminant", Definition: "Used to determine root nature."}},
				},
			},
			{ID: "p1_3", Title: "3. Equations & Inequalities", Topics: []string{"Simultaneous Eq", "Quadratic Inequalities", "Graphs of Inequalities"}},
			{ID: "p1_4", Title: "4. Graphs & Transformations", Topics: []string{"Cubic Graphs", "Reciprocal Graphs", "Transformations (Translation/Stretch)"}},
			{ID: "p1_5", Title: "5. Straight Line Graphs", Topics: []string{"y=mx+c", "Parallel/Perpendicular", "Distance/Midpoint"}},
			{ID: "p1_6", Title: "6. Trigonometric Ratios", Topics: []string{"Sine/Cosine Rule", "Triangle Area", "Trig Graphs"}},
			{
				ID:     "p1_7",
				Title:  "7. Differentiation",
				Topics: []string{"First Principles", "Tangents & Normals", "x^n Rule"},
				Guide: &Guide{
					Structure:   []string{"Concept of Gradient", "Power Rule", "Tangents", "Normals"},
					CoreContent: "Introduction to calculus. dy/dx represents the gradient function.",
					Tips:        []string{"Differentiate term by term.", "Normal gradient is -1/m."},
				},
				Details: &Details{
					KeyPoints: []string{"Derivative is the gradient function.", "Stationary points occur at dy/dx = 0."},
					Formulas:  []string{"dy/dx = anx^(n-1)", "f'(x) = limit definition"},
					Concepts:  []Concept{{Term: "Derivative", Definition: "Instantaneous rate of change."}},
				},
			},
			{ID: "p1_8", Title: "8. Integration", Topics: []string{"Indefinite Integrals", "Finding C", "Definite Integrals", "Area Under Curves"}},
		},
	},
	{
		Code:  "P2",
		Title: "Pure Mathematics 2",
		Chapters: []Chapter{
			{ID: "p2_1", Title: "1. Algebraic Methods", Topics: []string{"Polynomial Division", "Factor Theorem", "Proof"}},
			{ID: "p2_2", Title: "2. Coordinate Geometry", Topics: []string{"Circles", "Tangents/Normals to Circles"}},
			{
				ID:     "p2_3",
				Title:  "3. Exponentials & Logarithms",
				Topics: []string{"Laws of Logs", "Solving Equations", "Graphs"},
				Guide: &Guide{
					Structure:   []string{"Log Definition", "Laws of Logs", "Natural Logs (ln)", "Solving a^x=b"},
					CoreContent: "Logarithms are the inverse of exponentials. Master the log laws to solve power equations.",
					Tips:        []string{"log(a)+log(b) = log(ab).", "Take logs of both sides for unknowns in powers."},
				},
				Details: &Details{
					KeyPoints: []string{"log_a(x) = y means a^y = x.", "e is the natural base (approx 2.718)."},
					Formulas:  []string{"log(xy) = log x + log y", "log(x^k) = k log x"},
					Concepts:  []Concept{{Term: "Logarithm", Definition: "The power to which a base must be raised."}},
				},
			},
			{ID: "p2_4", Title: "4. Binomial Expansion", Topics: []string{"(1+x)^n", "Factorial Notation", "nCr Formula"}},
			{ID: "p2_5", Title: "5. Sequences & Series", Topics: []string{"Arithmetic Progressions", "Geometric Progressions", "Sum to Infinity"}},
			{ID: "p2_6", Title: "6. Trigonometric Identities", Topics: []string{"Radians", "Arc Length", "Sector Area", "Identities"}},
			{ID: "p2_7", Title: "7. Differentiation", Topics: []string{"Increasing/Decreasing", "Stationary Points", "Optimization"}},
			{ID: "p2_8", Title: "8. Integration", Topics: []string{"Trapezium Rule", "Area Between Curves"}},
		},
	},
	{
		Code:  "S1",
		Title: "Statistics 1",
		Chapters: []Chapter{
			{ID: "s1_1", Title: "1. Mathematical Models", Topics: []string{"Modeling Process", "Variable Types"}},
			{ID: "s1_2", Title: "2. Measures of Location & Spread", Topics: []string{"Mean/Median", "Variance/SD", "Interpolation", "Coding"}},
			{ID: "s1_3", Title: "3. Representations of Data", Topics: []string{"Box Plots", "Histograms", "Skewness"}},
			{ID: "s1_4", Title: "4. Probability", Topics: []string{"Venn Diagrams", "Tree Diagrams", "Conditional Prob", "Independence"}},
			{ID: "s1_5", Title: "5. Correlation & Regression", Topics: []string{"PMCC", "Regression Line", "Coding Effect"}},
			{ID: "s1_6", Title: "6. Discrete Random Variables", Topics: []string{"E(X)", "Var(X)", "Uniform Distribution"}},
			{
				ID:     "s1_7",
				Title:  "7. The Normal Distribution",
				Topics: []string{"Z-scores", "Standard Normal", "Inverse Normal"},
				Guide: &Guide{
					Structure:   []string{"Bell Curve Properties", "Standardizing (Z)", "Using Tables", "Inverse Calculations"},
					CoreContent: "The most important continuous distribution. Everything is standardised to Z ~ N(0,1).",
					Tips:        []string{"Always sketch the curve.", "Area under the curve is always 1."},
				},
				Details: &Details{
					KeyPoints: []string{"Symmetrical about the mean.", "Z-score measures standard deviations from mean."},
					Formulas:  []string{"Z = (X - mu) / sigma"},
					Concepts:  []Concept{{Term: "Standardization", Definition: "Converting any Normal to the Standard Normal."}},
				},
			},
		},
	},
}
