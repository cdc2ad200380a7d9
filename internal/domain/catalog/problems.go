package catalog

import "github.com/okian/codearena/internal/domain/model"

// builtin is the static problem table, keyed by problem id.
var builtin = []model.Problem{
	{
		ID:           "power-of-two",
		Title:        "Power of Two",
		Description:  "Given an integer n, return true if it is a power of two. Otherwise, return false. An integer n is a power of two, if there exists an integer x such that n == 2^x.",
		InputFormat:  "A single integer n",
		OutputFormat: "Print 'true' if n is a power of two, 'false' otherwise",
		Constraints:  []string{"-2^31 ≤ n ≤ 2^31 - 1"},
		Examples: []model.Example{
			{Input: "1", Output: "true", Explanation: "2^0 = 1"},
			{Input: "16", Output: "true", Explanation: "2^4 = 16"},
			{Input: "3", Output: "false", Explanation: "3 is not a power of 2"},
		},
	},
	{
		ID:           "three-sum",
		Title:        "Three Sum",
		Description:  "Given an integer array nums, return all the triplets [nums[i], nums[j], nums[k]] such that i != j, i != k, and j != k, and nums[i] + nums[j] + nums[k] == 0. Notice that the solution set must not contain duplicate triplets.",
		InputFormat:  "First line: integer n (array length)\nSecond line: n space-separated integers (if n > 0)",
		OutputFormat: "Print the triplets in the format [[a,b,c],[d,e,f]] or [] if no triplets found",
		Constraints:  []string{"0 ≤ n ≤ 3000", "-10^5 ≤ nums[i] ≤ 10^5"},
		Examples: []model.Example{
			{Input: "6\n-1 0 1 2 -1 -4", Output: "[[-1,-1,2],[-1,0,1]]", Explanation: "The triplets that sum to 0 are: [-1,-1,2] and [-1,0,1]"},
			{Input: "0\n", Output: "[]", Explanation: "Empty array has no triplets"},
		},
	},
	{
		ID:           "binary-search-insert-position",
		Title:        "Search Insert Position",
		Description:  "Given a sorted array of distinct integers and a target value, return the index if the target is found. If not, return the index where it would be if it were inserted in order. You must write an algorithm with O(log n) runtime complexity.",
		InputFormat:  "First line: sorted array in format [1,3,5,6]\nSecond line: target integer",
		OutputFormat: "Print the index position as an integer",
		Constraints: []string{
			"1 ≤ nums.length ≤ 10^4",
			"-10^4 ≤ nums[i] ≤ 10^4",
			"nums contains distinct values sorted in ascending order",
			"-10^4 ≤ target ≤ 10^4",
		},
		Examples: []model.Example{
			{Input: "[1,3,5,6]\n5", Output: "2", Explanation: "Target 5 is found at index 2"},
			{Input: "[1,3,5,6]\n2", Output: "1", Explanation: "Target 2 should be inserted at index 1"},
		},
	},
	{
		ID:           "elimination-game",
		Title:        "Elimination Game",
		Description:  "You have a list arr of all integers in the range [1, n] sorted in a strictly increasing order. Apply the following algorithm: Starting from left to right, remove the first number and every other number afterward until you reach the end of the list. Repeat the previous step again, but this time from right to left. Keep repeating the steps again, alternating left to right and right to left, until a single number remains. Given the integer n, return the last number that remains in arr.",
		InputFormat:  "A single integer n",
		OutputFormat: "Print the last remaining number",
		Constraints:  []string{"1 ≤ n ≤ 10^9"},
		Examples: []model.Example{
			{Input: "9", Output: "6", Explanation: "arr = [1,2,3,4,5,6,7,8,9]\narr = [2,4,6,8] (left to right)\narr = [2,6] (right to left)\narr = [6] (left to right)"},
		},
	},
	{
		ID:           "find-town-judge",
		Title:        "Find the Town Judge",
		Description:  "In a town, there are n people labeled from 1 to n. There is a rumor that one of these people is secretly the town judge. If the town judge exists, then: (1) The town judge trusts nobody. (2) Everybody (except for the town judge) trusts the town judge. (3) There is exactly one person that satisfies properties 1 and 2. You are given an array trust where trust[i] = [ai, bi] representing that the person labeled ai trusts the person labeled bi. Return the label of the town judge if the town judge exists and can be identified, or return -1 otherwise.",
		InputFormat:  "First line: integer n (number of people)\nSecond line: integer m (number of trust relationships)\nNext m lines: two integers ai bi (ai trusts bi)",
		OutputFormat: "Print the label of the town judge, or -1 if no judge exists",
		Constraints: []string{
			"1 ≤ n ≤ 1000",
			"0 ≤ trust.length ≤ 10^4",
			"trust[i].length == 2",
			"All the pairs of trust are unique",
		},
		Examples: []model.Example{
			{Input: "2\n1\n1 2", Output: "2", Explanation: "Person 1 trusts person 2, and person 2 trusts nobody, so person 2 is the judge"},
		},
	},
	{
		ID:           "front-middle-back-queue",
		Title:        "Design Front Middle Back Queue",
		Description:  "Design a queue that supports push and pop operations in the front, middle, and back. Implement the FrontMiddleBack class with various operations like pushFront, pushMiddle, pushBack, popFront, popMiddle, popBack.",
		InputFormat:  "Series of operations to perform on the queue",
		OutputFormat: "Return values for pop operations, -1 if queue is empty",
		Constraints:  []string{"1 ≤ val ≤ 10^9", "At most 1000 calls will be made to each function"},
		Examples: []model.Example{
			{Input: "pushFront(1)\npushBack(2)\npushMiddle(3)\npopFront()", Output: "1", Explanation: "Queue becomes [1,3,2], then pop front returns 1"},
		},
	},
	{
		ID:           "insertion-sort-pairs",
		Title:        "Insertion Sort List",
		Description:  "Given the head of a singly linked list, sort the list using insertion sort, and return the sorted list's head. The algorithm of insertion sort is: Insertion sort iterates, consuming one input element each repetition, and growing a sorted output list. At each iteration, insertion sort removes one element from the input data, finds the location it belongs within the sorted list, and inserts it there.",
		InputFormat:  "Linked list values as space-separated integers",
		OutputFormat: "Print the sorted linked list values",
		Constraints:  []string{"The number of nodes in the list is in the range [1, 5000]", "-5000 ≤ Node.val ≤ 5000"},
		Examples: []model.Example{
			{Input: "4 2 1 3", Output: "1 2 3 4", Explanation: "Sort the linked list using insertion sort"},
		},
	},
	{
		ID:           "longest-common-prefix",
		Title:        "Longest Common Prefix",
		Description:  "Write a function to find the longest common prefix string amongst an array of strings. If there is no common prefix, return an empty string.",
		InputFormat:  "First line: number of strings\nNext lines: the strings",
		OutputFormat: "Print the longest common prefix string",
		Constraints: []string{
			"1 ≤ strs.length ≤ 200",
			"0 ≤ strs[i].length ≤ 200",
			"strs[i] consists of only lower-case English letters",
		},
		Examples: []model.Example{
			{Input: "3\nflower\nflow\nflight", Output: "fl", Explanation: "The longest common prefix is 'fl'"},
		},
	},
	{
		ID:           "max-path-sum-binary-tree",
		Title:        "Binary Tree Maximum Path Sum",
		Description:  "A path in a binary tree is a sequence of nodes where each pair of adjacent nodes in the sequence has an edge connecting them. A node can only appear in the sequence at most once. The path does not need to pass through the root. The path sum of a path is the sum of the node's values in the path. Given the root of a binary tree, return the maximum path sum of any non-empty path.",
		InputFormat:  "Binary tree nodes in level order (null for missing nodes)",
		OutputFormat: "Print the maximum path sum",
		Constraints:  []string{"The number of nodes in the tree is in the range [1, 3 * 10^4]", "-1000 ≤ Node.val ≤ 1000"},
		Examples: []model.Example{
			{Input: "1 2 3", Output: "6", Explanation: "The optimal path is 2 -> 1 -> 3 with a path sum of 2 + 1 + 3 = 6"},
		},
	},
	{
		ID:           "merge-sort",
		Title:        "Merge Sort",
		Description:  "Implement the merge sort algorithm to sort an array of integers in ascending order. Merge sort is a divide-and-conquer algorithm that divides the input array into two halves, recursively sorts them, and then merges the sorted halves.",
		InputFormat:  "First line: number of elements\nSecond line: space-separated integers",
		OutputFormat: "Print the sorted array as space-separated integers",
		Constraints:  []string{"1 ≤ n ≤ 10^5", "-10^9 ≤ arr[i] ≤ 10^9"},
		Examples: []model.Example{
			{Input: "6\n5 2 4 7 1 3", Output: "1 2 3 4 5 7", Explanation: "Sort the array using merge sort algorithm"},
		},
	},
	{
		ID:           "merge-two-sorted-lists",
		Title:        "Merge Two Sorted Lists",
		Description:  "You are given the heads of two sorted linked lists list1 and list2. Merge the two lists in a one sorted list. The list should be made by splicing together the nodes of the first two lists. Return the head of the merged linked list.",
		InputFormat:  "First line: first sorted list values\nSecond line: second sorted list values",
		OutputFormat: "Print the merged sorted list values",
		Constraints: []string{
			"The number of nodes in both lists is in the range [0, 50]",
			"-100 ≤ Node.val ≤ 100",
			"Both list1 and list2 are sorted in non-decreasing order",
		},
		Examples: []model.Example{
			{Input: "1 2 4\n1 3 4", Output: "1 1 2 3 4 4", Explanation: "Merge the two sorted linked lists"},
		},
	},
	{
		ID:           "regex-matching",
		Title:        "Regular Expression Matching",
		Description:  "Given an input string s and a pattern p, implement regular expression matching with support for '.' and '*' where: '.' Matches any single character. '*' Matches zero or more of the preceding element. The matching should cover the entire input string (not partial).",
		InputFormat:  "First line: input string s\nSecond line: pattern p",
		OutputFormat: "Print 'true' if s matches p, 'false' otherwise",
		Constraints: []string{
			"1 ≤ s.length ≤ 20",
			"1 ≤ p.length ≤ 30",
			"s contains only lowercase English letters",
			"p contains only lowercase English letters, '.', and '*'",
		},
		Examples: []model.Example{
			{Input: "aa\na*", Output: "true", Explanation: "'a*' means zero or more 'a's, so it matches 'aa'"},
		},
	},
	{
		ID:           "stack-using-queues",
		Title:        "Implement Stack using Queues",
		Description:  "Implement a last-in-first-out (LIFO) stack using only two queues. The implemented stack should support all the functions of a normal stack (push, top, pop, and empty).",
		InputFormat:  "Series of operations to perform on the stack",
		OutputFormat: "Return values for top and pop operations",
		Constraints:  []string{"1 ≤ x ≤ 9", "At most 100 calls will be made to push, pop, top, and empty"},
		Examples: []model.Example{
			{Input: "push(1)\npush(2)\ntop()\npop()", Output: "2\n2", Explanation: "Stack operations using queues underneath"},
		},
	},
	{
		ID:           "tiny-url-encoder",
		Title:        "Encode and Decode TinyURL",
		Description:  "TinyURL is a URL shortening service where you enter a URL and it returns a short URL. Design a class to encode a URL and decode a tiny URL. There is no restriction on how your encode/decode algorithm should work. You just need to ensure that a URL can be encoded to a tiny URL and the tiny URL can be decoded to the original URL.",
		InputFormat:  "URL to encode or tiny URL to decode",
		OutputFormat: "Encoded tiny URL or decoded original URL",
		Constraints:  []string{"1 ≤ url.length ≤ 10^4", "url is guaranteed to be a valid URL"},
		Examples: []model.Example{
			{Input: "https://leetcode.com/problems/design-tinyurl", Output: "http://tinyurl.com/4e9iAk", Explanation: "Encode the long URL to a short one"},
		},
	},
}
