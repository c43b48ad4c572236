/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package hll

// couponMappingXArr and couponMappingYArr map a coupon count to a cardinality
// estimate. The table was computed for 2^26 slots, the resolution of a coupon, and
// serves every lgConfigK.
var couponMappingXArr = [...]float64{
	0.0, 1.0, 20.0, 400.0,
	8000.0, 160000.0, 300000.0, 600000.0,
	900000.0, 1200000.0, 1500000.0, 1800000.0,
	2100000.0, 2400000.0, 2700000.0, 3000000.0,
	3300000.0, 3600000.0, 3900000.0, 4200000.0,
	4500000.0, 4800000.0, 5100000.0, 5400000.0,
	5700000.0, 6000000.0, 6300000.0, 6600000.0,
	6900000.0, 7200000.0, 7500000.0, 7800000.0,
	8100000.0, 8400000.0, 8700000.0, 9000000.0,
	9300000.0, 9600000.0, 9900000.0, 10200000.0,
}

var couponMappingYArr = [...]float64{
	0.0, 1.0, 20.0000009437402611, 400.0003963713384110,
	8000.1589294602090376, 160063.6067763759638183, 300223.7071597663452849, 600895.5933856170158833,
	902016.8065120954997838, 1203588.4983199508860707, 1505611.8245524743106216, 1808087.9449319066479802,
	2111018.0231759352609515, 2414403.2270142501220107, 2718244.7282051891088486, 3022543.7025524540804327,
	3327301.3299219091422856, 3632518.7942584538832307, 3938197.2836029687896371, 4244337.9901093561202288,
	4550942.1100616492331028, 4858010.8438911894336343, 5165545.3961938973516226, 5473546.9757476449012756,
	5782016.7955296505242586, 6090956.0727340159937739, 6400366.0287892958149314, 6710247.8893762007355690,
	7020602.8844453142955899, 7331432.2482349723577499, 7642737.2192891482263803, 7954519.0404754765331745,
	8266778.9590033423155546, 8579518.2264420464634895, 8892738.0987390466034412, 9206439.8362383283674717,
	9520624.7036988288164139, 9835293.9703129194676876, 10150448.9097250290215015, 10466090.8000503256917000,
}

// The composite estimator corrects the raw HyperLogLog estimate with one table per
// lgConfigK, indexed from minLogK. Point i of a table is (rawEstimate, i*yStride):
// the expected raw estimate at a true cardinality of i*yStride, with yStride = K/8.
var compositeYStrides = [...]float64{
	2.0,      // lgK 4
	4.0,      // lgK 5
	8.0,      // lgK 6
	16.0,     // lgK 7
	32.0,     // lgK 8
	64.0,     // lgK 9
	128.0,    // lgK 10
	256.0,    // lgK 11
	512.0,    // lgK 12
	1024.0,   // lgK 13
	2048.0,   // lgK 14
	4096.0,   // lgK 15
	8192.0,   // lgK 16
	16384.0,  // lgK 17
	32768.0,  // lgK 18
	65536.0,  // lgK 19
	131072.0, // lgK 20
	262144.0, // lgK 21
}

var compositeXArrays = [...][]float64{
	// lgK 4
	{
		10.7680, 11.7631, 12.8223, 13.9456,
		15.1330, 16.3838, 17.6967, 19.0701,
		20.5019, 21.9897, 23.5307, 25.1219,
		26.7598, 28.4412, 30.1625, 31.9202,
		33.7107, 35.5307, 37.3769, 39.2462,
		41.1357, 43.0427, 44.9648, 46.8997,
		48.8455, 50.8004, 52.7628, 54.7315,
		56.7052, 58.6831, 60.6641, 62.6478,
		64.6335, 66.6207, 68.6091, 70.5983,
		72.5882, 74.5785, 76.5692, 78.5601,
		80.5512,
	},
	// lgK 5
	{
		22.3040, 24.2906, 26.3989, 28.6293,
		30.9813, 33.4537, 36.0444, 38.7505,
		41.5683, 44.4937, 47.5219, 50.6474,
		53.8647, 57.1676, 60.5501, 64.0059,
		67.5288, 71.1126, 74.7514, 78.4396,
		82.1716, 85.9425, 89.7475, 93.5822,
		97.4429, 101.3258, 105.2277, 109.1459,
		113.0778, 117.0212, 120.9743, 124.9353,
		128.9029, 132.8759, 136.8532, 140.8341,
		144.8179, 148.8039, 152.7917, 156.7810,
		160.7714,
	},
	// lgK 6
	{
		45.3760, 49.3433, 53.5477, 57.9895,
		62.6679, 67.5804, 72.7229, 78.0902,
		83.6755, 89.4710, 95.4676, 101.6555,
		108.0242, 114.5625, 121.2590, 128.1019,
		135.0798, 142.1810, 149.3942, 156.7088,
		164.1143, 171.6009, 179.1595, 186.7817,
		194.4596, 202.1861, 209.9548, 217.7598,
		225.5961, 233.4589, 241.3444, 249.2489,
		257.1694, 265.1033, 273.0483, 281.0025,
		288.9643, 296.9323, 304.9053, 312.8824,
		320.8629,
	},
	// lgK 7
	{
		91.5546, 99.4854, 107.8838, 116.7507,
		126.0839, 135.8786, 146.1270, 156.8188,
		167.9410, 179.4783, 191.4135, 203.7278,
		216.4007, 229.4108, 242.7361, 256.3542,
		270.2424, 284.3786, 298.7408, 313.3081,
		328.0603, 342.9782, 358.0438, 373.2403,
		388.5524, 403.9657, 419.4674, 435.0459,
		450.6906, 466.3922, 482.1426, 497.9343,
		513.7610, 529.6173, 545.4983, 561.4000,
		577.3189, 593.2520, 609.1968, 625.1511,
		641.1134,
	},
	// lgK 8
	{
		183.8778, 199.7320, 216.5148, 234.2276,
		252.8663, 272.4210, 292.8765, 314.2122,
		336.4028, 359.4183, 383.2249, 407.7856,
		433.0604, 459.0074, 485.5834, 512.7442,
		540.4456, 568.6439, 597.2961, 626.3607,
		655.7977, 685.5695, 715.6402, 745.9767,
		776.5481, 807.3262, 838.2851, 869.4015,
		900.6542, 932.0245, 963.4956, 995.0529,
		1026.6834, 1058.3757, 1090.1201, 1121.9082,
		1153.7328, 1185.5876, 1217.4675, 1249.3681,
		1281.2856,
	},
	// lgK 9
	{
		368.5290, 400.2301, 433.7819, 469.1869,
		506.4366, 545.5115, 586.3812, 629.0048,
		673.3322, 719.3040, 766.8534, 815.9067,
		866.3852, 918.2058, 971.2827, 1025.5287,
		1080.8561, 1137.1781, 1194.4096, 1252.4680,
		1311.2743, 1370.7530, 1430.8333, 1491.4490,
		1552.5384, 1614.0453, 1675.9178, 1738.1091,
		1800.5772, 1863.2841, 1926.1962, 1989.2840,
		2052.5212, 2115.8851, 2179.3558, 2242.9162,
		2306.5517, 2370.2496, 2433.9994, 2497.7920,
		2561.6199,
	},
	// lgK 10
	{
		737.8337, 801.2289, 868.3187, 939.1081,
		1013.5800, 1091.6953, 1173.3933, 1258.5930,
		1347.1939, 1439.0784, 1534.1132, 1632.1519,
		1733.0376, 1836.6051, 1942.6838, 2051.1000,
		2161.6791, 2274.2483, 2388.6380, 2504.6839,
		2622.2281, 2741.1206, 2861.2197, 2982.3932,
		3104.5184, 3227.4823, 3351.1816, 3475.5227,
		3600.4209, 3725.8007, 3851.5946, 3977.7430,
		4104.1935, 4230.9001, 4357.8231, 4484.9280,
		4612.1851, 4739.5691, 4867.0584, 4994.6350,
		5122.2834,
	},
	// lgK 11
	{
		1476.4445, 1603.2277, 1737.3937, 1878.9519,
		2027.8682, 2184.0642, 2347.4190, 2517.7706,
		2694.9188, 2878.6286, 3068.6342, 3264.6436,
		3466.3437, 3673.4051, 3885.4873, 4102.2437,
		4323.3261, 4548.3896, 4777.0957, 5009.1163,
		5244.1363, 5481.8559, 5721.9925, 5964.2816,
		6208.4780, 6454.3559, 6701.7086, 6950.3488,
		7200.1074, 7450.8327, 7702.3899, 7954.6595,
		8207.5363, 8460.9284, 8714.7559, 8968.9495,
		9223.4497, 9478.2057, 9733.1741, 9988.3184,
		10243.6079,
	},
	// lgK 12
	{
		2953.6667, 3207.2260, 3475.5442, 3758.6402,
		4056.4452, 4368.8028, 4695.4712, 5036.1267,
		5390.3694, 5757.7298, 6137.6770, 6529.6278,
		6932.9567, 7347.0057, 7771.0948, 8204.5316,
		8646.6207, 9096.6726, 9554.0114, 10017.9813,
		10487.9528, 10963.3267, 11443.5381, 11928.0583,
		12416.3971, 12908.1027, 13402.7623, 13900.0007,
		14399.4798, 14900.8962, 15403.9798, 15908.4916,
		16414.2211, 16920.9841, 17428.6204, 17936.9914,
		18445.9778, 18955.4776, 19465.4042, 19975.6840,
		20486.2554,
	},
	// lgK 13
	{
		5908.1114, 6415.2228, 6951.8456, 7518.0171,
		8113.5995, 8738.2803, 9391.5758, 10072.8392,
		10781.2710, 11515.9326, 12275.7629, 13059.5965,
		13866.1830, 14694.2073, 15542.3102, 16409.1077,
		17293.2099, 18193.2388, 19107.8429, 20035.7116,
		20975.5860, 21926.2685, 22886.6293, 23855.6117,
		24832.2351, 25815.5963, 26804.8694, 27799.3043,
		28798.2243, 29801.0227, 30807.1593, 31816.1555,
		32827.5903, 33841.0949, 34856.3489, 35873.0746,
		36891.0334, 37910.0210, 38929.8637, 39950.4146,
		40971.5499,
	},
	// lgK 14
	{
		11817.0010, 12831.2167, 13904.4487, 15036.7711,
		16227.9084, 17477.2354, 18783.7853, 20146.2645,
		21563.0743, 23032.3382, 24551.9349, 26119.5340,
		27732.6356, 29388.6106, 31084.7411, 32818.2600,
		34586.3886, 36386.3712, 38215.5060, 40071.1721,
		41950.8525, 43852.1520, 45772.8117, 47710.7184,
		49663.9111, 51630.5834, 53609.0836, 55597.9114,
		57595.7132, 59601.2757, 61613.5181, 63631.4832,
		65654.3284, 67681.3164, 69711.8056, 71745.2408,
		73781.1443, 75819.1075, 77858.7826, 79899.8754,
		81942.1386,
	},
	// lgK 15
	{
		23634.7801, 25663.2046, 27809.6548, 30074.2792,
		32456.5262, 34955.1458, 37568.2043, 40293.1151,
		43126.6809, 46065.1497, 49104.2790, 52239.4092,
		55465.5411, 58777.4174, 62169.6030, 65636.5648,
		69172.7461, 72772.6362, 76430.8322, 80142.0932,
		83901.3853, 87703.9190, 91545.1765, 95420.9318,
		99327.2631, 103260.5577, 107217.5120, 111195.1254,
		115190.6909, 119201.7816, 123226.2356, 127262.1383,
		131307.8045, 135361.7592, 139422.7189, 143489.5730,
		147561.3660, 151637.2802, 155716.6201, 159798.7970,
		163883.3158,
	},
	// lgK 16
	{
		47270.3385, 51327.1803, 55620.0671, 60149.2953,
		64913.7620, 69910.9666, 75137.0425, 80586.8162,
		86253.8943, 92130.7726, 98208.9673, 104479.1595,
		110931.3521, 117555.0309, 124339.3268, 131273.1744,
		138345.4611, 145545.1663, 152861.4848, 160283.9354,
		167802.4511, 175407.4531, 183089.9062, 190841.3587,
		198653.9670, 206520.5061, 214434.3686, 222389.5535,
		230380.6463, 238402.7934, 246451.6705, 254523.4485,
		262614.7566, 270722.6447, 278844.5454, 286978.2374,
		295121.8093, 303273.6257, 311432.2950, 319596.6399,
		327765.6701,
	},
	// lgK 17
	{
		94541.4553, 102655.1319, 111240.8918, 120299.3276,
		129828.2334, 139822.6082, 150274.7188, 161174.2187,
		172508.3210, 184262.0185, 196418.3438, 208958.6603,
		221862.9741, 235110.2579, 248678.7745, 262546.3936,
		276690.8911, 291090.2264, 305722.7899, 320567.6198,
		335604.5827, 350814.5212, 366179.3655, 381682.2124,
		397307.3749, 413040.4030, 428868.0820, 444778.4096,
		460760.5571, 476804.8169, 492902.5404, 509046.0690,
		525228.6609, 541444.4157, 557688.1984, 573955.5662,
		590242.6960, 606546.3166, 622863.6448, 639192.3259,
		655530.3786,
	},
	// lgK 18
	{
		189083.6889, 205311.0350, 222482.5411, 240599.3923,
		259657.1763, 279645.8914, 300550.0714, 322349.0235,
		345017.1744, 368524.5103, 392837.0969, 417917.6617,
		443726.2182, 470220.7119, 497357.6699, 525092.8319,
		553381.7511, 582180.3466, 611445.4002, 641134.9885,
		671208.8459, 701628.6575, 732358.2841, 763363.9199,
		794614.1907, 826080.1967, 857735.5086, 889556.1219,
		921520.3788, 953608.8639, 985804.2801, 1018091.3100,
		1050456.4695, 1082887.9576, 1115375.5045, 1147910.2238,
		1180484.4693, 1213091.6984, 1245726.3445, 1278383.6977,
		1311059.7957,
	},
	// lgK 19
	{
		378168.1561, 410622.8413, 444965.8398, 481199.5215,
		519315.0620, 559292.4579, 601100.7766, 644698.6331,
		690034.8813, 737049.4939, 785674.6032, 835835.6647,
		887452.7062, 940441.6200, 994715.4605, 1050185.7086,
		1106763.4710, 1164360.5870, 1222890.6208, 1282269.7261,
		1342417.3722, 1403256.9301, 1464716.1214, 1526727.3349,
		1589227.8222, 1652159.7843, 1715470.3620, 1779111.5463,
		1843040.0220, 1907216.9580, 1971607.7595, 2036181.7918,
		2100912.0867, 2165775.0415, 2230750.1166, 2295819.5390,
		2360968.0159, 2426182.4620, 2491451.7437, 2556766.4413,
		2622118.6298,
	},
	// lgK 20
	{
		756337.0905, 821246.4538, 889932.4371, 962399.7801,
		1038630.8335, 1118585.5909, 1202202.1870, 1289397.8524,
		1380070.2950, 1474099.4611, 1571349.6156, 1671671.6707,
		1774905.6823, 1880883.4362, 1989431.0419, 2100371.4621,
		2213526.9110, 2328721.0677, 2445781.0619, 2564539.2013,
		2684834.4248, 2806513.4753, 2929431.7960, 3053454.1648,
		3178455.0853, 3304318.9593, 3430940.0686, 3558222.3953,
		3686079.3085, 3814433.1461, 3943214.7184, 4072362.7555,
		4201823.3211, 4331549.2093, 4461499.3408, 4591638.1694,
		4721935.1091, 4852363.9892, 4982902.5422, 5113531.9284,
		5244236.2981,
	},
	// lgK 21
	{
		1512674.9593, 1642493.6789, 1779865.6318, 1924800.2972,
		2077262.3766, 2237171.8569, 2404405.0078, 2578796.2910,
		2760141.1225, 2948199.3954, 3142699.6406, 3343343.6826,
		3549811.6346, 3761767.0686, 3978862.2047, 4200742.9690,
		4427053.7908, 4657442.0293, 4891561.9442, 5129078.1516,
		5369668.5301, 5613026.5656, 5858863.1451, 6106907.8247,
		6356909.6115, 6608637.3093, 6861879.4819, 7116444.0933,
		7372157.8814, 7628865.5223, 7886428.6361, 8144724.6829,
		8403645.7898, 8663097.5449, 8922997.7893, 9183275.4302,
		9443869.2954, 9704727.0435, 9965804.1392, 10227062.9028,
		10488471.6345,
	},
}
